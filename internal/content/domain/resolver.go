// Package domain resolves site text for the two supported languages.
package domain

import (
	"strings"

	catalog "buildcare_site/internal/catalog/domain"
	"buildcare_site/platform/apperr"
)

const (
	msgUnknownKey     = "unknown content key"
	msgUnknownSection = "unknown content section"
)

// Resolver answers text lookups. It is read-only after construction.
type Resolver struct {
	bundle  *Bundle
	catalog *catalog.Catalog
}

// NewResolver builds a Resolver over a loaded bundle and the catalog it was
// checked against.
func NewResolver(bundle *Bundle, c *catalog.Catalog) *Resolver {
	return &Resolver{bundle: bundle, catalog: c}
}

// Text returns the string for a "section.field" key.
func (r *Resolver) Text(lang Language, key string) (string, error) {
	section, field, ok := strings.Cut(key, ".")
	if !ok || section == "" || field == "" {
		return "", apperr.NotFound(msgUnknownKey)
	}
	value, ok := r.bundle.dictionaries[Normalize(lang)][section][field]
	if !ok {
		return "", apperr.NotFound(msgUnknownKey)
	}
	return value, nil
}

// Section returns a copy of one dictionary section.
func (r *Resolver) Section(lang Language, section string) (map[string]string, error) {
	fields, ok := r.bundle.dictionaries[Normalize(lang)][section]
	if !ok {
		return nil, apperr.NotFound(msgUnknownSection)
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out, nil
}

// Dictionary returns a copy of the whole dictionary for lang.
func (r *Resolver) Dictionary(lang Language) Dictionary {
	src := r.bundle.dictionaries[Normalize(lang)]
	out := make(Dictionary, len(src))
	for section, fields := range src {
		copied := make(map[string]string, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		out[section] = copied
	}
	return out
}

// Service returns the localized text for a catalog entry. When lang has no
// translation for id, the catalog's own fields are returned as a whole;
// translated and original fields are never mixed.
func (r *Resolver) Service(lang Language, id string) (ServiceText, bool, error) {
	entry, err := r.catalog.Get(id)
	if err != nil {
		return ServiceText{}, false, err
	}

	if translated, ok := r.bundle.services[Normalize(lang)][id]; ok {
		translated.Process = append([]string(nil), translated.Process...)
		return translated, true, nil
	}

	return ServiceText{
		Title:   entry.Title,
		Short:   entry.ShortDescription,
		Long:    entry.LongDescription,
		Process: entry.Process,
	}, false, nil
}

// Direction returns the reading direction for lang.
func (r *Resolver) Direction(lang Language) Dir {
	return Direction(lang)
}
