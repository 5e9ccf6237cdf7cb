package domain

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	catalog "buildcare_site/internal/catalog/domain"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Dictionary maps section to field to string.
type Dictionary map[string]map[string]string

// ServiceText is the translatable part of a catalog entry.
type ServiceText struct {
	Title   string   `yaml:"title" json:"title"`
	Short   string   `yaml:"short" json:"shortDescription"`
	Long    string   `yaml:"long" json:"longDescription"`
	Process []string `yaml:"process" json:"process"`
}

func (s ServiceText) complete() bool {
	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Short) == "" || strings.TrimSpace(s.Long) == "" {
		return false
	}
	if len(s.Process) == 0 {
		return false
	}
	for _, step := range s.Process {
		if strings.TrimSpace(step) == "" {
			return false
		}
	}
	return true
}

// Bundle holds every dictionary and service translation loaded at start.
type Bundle struct {
	dictionaries map[Language]Dictionary
	services     map[Language]map[string]ServiceText
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded(c *catalog.Catalog) (*Bundle, error) {
	return LoadFromFS(embeddedLocales, c)
}

// LoadFromFS reads locales/<lang>.yaml and locales/services.<lang>.yaml for
// every supported language and checks them against each other and the
// catalog. English service text always comes from the catalog itself.
func LoadFromFS(fsys fs.FS, c *catalog.Catalog) (*Bundle, error) {
	b := &Bundle{
		dictionaries: make(map[Language]Dictionary, len(Supported)),
		services:     make(map[Language]map[string]ServiceText, len(Supported)),
	}

	for _, lang := range Supported {
		dict, err := readDictionary(fsys, "locales/"+string(lang)+".yaml")
		if err != nil {
			return nil, err
		}
		b.dictionaries[lang] = dict

		if lang == English {
			continue
		}
		services, err := readServices(fsys, "locales/services."+string(lang)+".yaml")
		if err != nil {
			return nil, err
		}
		for id, text := range services {
			if !c.Has(id) {
				return nil, fmt.Errorf("locale %s: translation for unknown service %q", lang, id)
			}
			if !text.complete() {
				return nil, fmt.Errorf("locale %s: translation for service %q is incomplete", lang, id)
			}
		}
		b.services[lang] = services
	}

	if err := checkParity(b.dictionaries); err != nil {
		return nil, err
	}
	return b, nil
}

func readDictionary(fsys fs.FS, path string) (Dictionary, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	if len(dict) == 0 {
		return nil, fmt.Errorf("dictionary %s is empty", path)
	}
	return dict, nil
}

// A missing service translation file means nothing is translated yet.
func readServices(fsys fs.FS, path string) (map[string]ServiceText, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]ServiceText{}, nil
		}
		return nil, fmt.Errorf("read service translations %s: %w", path, err)
	}
	services := map[string]ServiceText{}
	if err := yaml.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("parse service translations %s: %w", path, err)
	}
	return services, nil
}

func checkParity(dicts map[Language]Dictionary) error {
	base := dicts[Default]
	for _, lang := range Supported {
		if lang == Default {
			continue
		}
		if missing := missingKeys(base, dicts[lang]); len(missing) > 0 {
			return fmt.Errorf("locale %s: missing keys %s", lang, strings.Join(missing, ", "))
		}
		if extra := missingKeys(dicts[lang], base); len(extra) > 0 {
			return fmt.Errorf("locale %s: keys not present in %s: %s", lang, Default, strings.Join(extra, ", "))
		}
	}
	return nil
}

// missingKeys lists "section.field" keys of want that have is missing or
// leaves blank.
func missingKeys(want, have Dictionary) []string {
	var missing []string
	for section, fields := range want {
		for field := range fields {
			if strings.TrimSpace(have[section][field]) == "" {
				missing = append(missing, section+"."+field)
			}
		}
	}
	sort.Strings(missing)
	return missing
}
