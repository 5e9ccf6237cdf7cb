// Package domain holds the service catalog: the fixed set of offered
// services and project types, compiled into the binary.
package domain

import (
	_ "embed"
	"fmt"
	"strings"

	"buildcare_site/platform/apperr"

	"gopkg.in/yaml.v3"
)

//go:embed data/services.yaml
var embeddedCatalog []byte

const msgServiceNotFound = "service not found"

// Testimonial is a client quote shown on a service page.
type Testimonial struct {
	Name  string `yaml:"name" json:"name"`
	Role  string `yaml:"role" json:"role"`
	Quote string `yaml:"quote" json:"quote"`
}

// Entry is one offered service. ID is both the routing key and the value
// space of the contact form's service field.
type Entry struct {
	ID               string        `yaml:"id"`
	Title            string        `yaml:"title"`
	ShortDescription string        `yaml:"short"`
	LongDescription  string        `yaml:"long"`
	Process          []string      `yaml:"process"`
	Testimonials     []Testimonial `yaml:"testimonials"`
	Gallery          []string      `yaml:"gallery"`
}

// ProjectType is an option of the project inquiry form.
type ProjectType struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type catalogFile struct {
	Services     []Entry       `yaml:"services"`
	ProjectTypes []ProjectType `yaml:"projectTypes"`
}

// Catalog is immutable after Load and safe for concurrent readers.
type Catalog struct {
	entries      []Entry
	byID         map[string]int
	projectTypes []ProjectType
	projectIDs   map[string]struct{}
}

// LoadEmbedded parses the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(embeddedCatalog)
}

// MustLoadEmbedded is LoadEmbedded for program start; it panics on a broken
// catalog since the binary cannot serve without one.
func MustLoadEmbedded() *Catalog {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse service catalog: %w", err)
	}
	if len(file.Services) == 0 {
		return nil, fmt.Errorf("service catalog: no services defined")
	}

	c := &Catalog{
		entries:    make([]Entry, 0, len(file.Services)),
		byID:       make(map[string]int, len(file.Services)),
		projectIDs: make(map[string]struct{}, len(file.ProjectTypes)),
	}

	for i, entry := range file.Services {
		entry.ID = strings.TrimSpace(entry.ID)
		if entry.ID == "" {
			return nil, fmt.Errorf("service catalog: entry %d has a blank id", i)
		}
		if _, exists := c.byID[entry.ID]; exists {
			return nil, fmt.Errorf("service catalog: duplicate id %q", entry.ID)
		}
		if strings.TrimSpace(entry.Title) == "" {
			return nil, fmt.Errorf("service catalog: %q has no title", entry.ID)
		}
		c.byID[entry.ID] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	for _, pt := range file.ProjectTypes {
		pt.ID = strings.TrimSpace(pt.ID)
		if pt.ID == "" {
			return nil, fmt.Errorf("service catalog: project type with blank id")
		}
		if _, exists := c.projectIDs[pt.ID]; exists {
			return nil, fmt.Errorf("service catalog: duplicate project type %q", pt.ID)
		}
		c.projectIDs[pt.ID] = struct{}{}
		c.projectTypes = append(c.projectTypes, pt)
	}

	return c, nil
}

// IDs returns every identifier in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, entry := range c.entries {
		ids[i] = entry.ID
	}
	return ids
}

// Entries returns a copy of every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, entry := range c.entries {
		out[i] = cloneEntry(entry)
	}
	return out
}

// Get returns a copy of the entry for id, or a NotFound error.
func (c *Catalog) Get(id string) (Entry, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Entry{}, apperr.NotFound(msgServiceNotFound)
	}
	return cloneEntry(c.entries[idx]), nil
}

// Has reports whether id is a catalog identifier. Matching is exact.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ProjectTypes returns the project types in display order.
func (c *Catalog) ProjectTypes() []ProjectType {
	out := make([]ProjectType, len(c.projectTypes))
	copy(out, c.projectTypes)
	return out
}

// HasProjectType reports whether id is a project type identifier.
func (c *Catalog) HasProjectType(id string) bool {
	_, ok := c.projectIDs[id]
	return ok
}

func cloneEntry(e Entry) Entry {
	e.Process = append([]string(nil), e.Process...)
	e.Testimonials = append([]Testimonial(nil), e.Testimonials...)
	e.Gallery = append([]string(nil), e.Gallery...)
	return e
}
