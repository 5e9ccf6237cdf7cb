// Package service provides business logic for the service catalog.
package service

import (
	"buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/catalog/transport"
	content "buildcare_site/internal/content/domain"
	"buildcare_site/internal/rotator"
	"buildcare_site/platform/logger"
)

// PathPrefix is the page path every service detail lives under.
const PathPrefix = "/services/"

// Service localizes catalog entries for presentation.
type Service struct {
	catalog  *domain.Catalog
	resolver *content.Resolver
	log      *logger.Logger
}

// New creates a new catalog service.
func New(catalog *domain.Catalog, resolver *content.Resolver, log *logger.Logger) *Service {
	return &Service{
		catalog:  catalog,
		resolver: resolver,
		log:      log,
	}
}

// PathFor returns the page path of a service id.
func PathFor(id string) string {
	return PathPrefix + id
}

// List returns every service summarized in lang.
func (s *Service) List(lang content.Language) (transport.ServiceListResponse, error) {
	entries := s.catalog.Entries()
	summaries := make([]transport.ServiceSummary, 0, len(entries))
	for _, entry := range entries {
		text, _, err := s.resolver.Service(lang, entry.ID)
		if err != nil {
			return transport.ServiceListResponse{}, err
		}
		summary := transport.ServiceSummary{
			ID:               entry.ID,
			Title:            text.Title,
			ShortDescription: text.Short,
			Path:             PathFor(entry.ID),
		}
		if len(entry.Gallery) > 0 {
			summary.Cover = entry.Gallery[0]
		}
		summaries = append(summaries, summary)
	}

	return transport.ServiceListResponse{
		Lang:     string(lang),
		Dir:      string(content.Direction(lang)),
		Services: summaries,
	}, nil
}

// Get returns the full localized page for id.
func (s *Service) Get(lang content.Language, id string) (transport.ServiceDetailResponse, error) {
	entry, err := s.catalog.Get(id)
	if err != nil {
		return transport.ServiceDetailResponse{}, err
	}
	text, translated, err := s.resolver.Service(lang, id)
	if err != nil {
		return transport.ServiceDetailResponse{}, err
	}
	if !translated && lang != content.English {
		s.log.Debug("service untranslated, serving catalog text", "service", id, "lang", string(lang))
	}

	testimonials := entry.Testimonials
	if testimonials == nil {
		testimonials = []domain.Testimonial{}
	}

	return transport.ServiceDetailResponse{
		ID:               entry.ID,
		Lang:             string(lang),
		Dir:              string(content.Direction(lang)),
		Translated:       translated,
		Title:            text.Title,
		ShortDescription: text.Short,
		LongDescription:  text.Long,
		Process:          text.Process,
		Testimonials:     testimonials,
		Gallery:          rotator.Describe(entry.Gallery, rotator.DefaultInterval),
	}, nil
}

// Paths returns one page path per catalog id, in catalog order.
func (s *Service) Paths() transport.PathsResponse {
	ids := s.catalog.IDs()
	paths := make([]transport.PathEntry, len(ids))
	for i, id := range ids {
		paths[i] = transport.PathEntry{ID: id, Path: PathFor(id)}
	}
	return transport.PathsResponse{Paths: paths}
}

// Gallery returns the rotating presentation for a service's images.
func (s *Service) Gallery(id string) (rotator.Descriptor, error) {
	entry, err := s.catalog.Get(id)
	if err != nil {
		return rotator.Descriptor{}, err
	}
	return rotator.Describe(entry.Gallery, rotator.DefaultInterval), nil
}

// FormOptions lists the accepted service and project type values, labelled
// in lang.
func (s *Service) FormOptions(lang content.Language) (transport.FormOptionsResponse, error) {
	list, err := s.List(lang)
	if err != nil {
		return transport.FormOptionsResponse{}, err
	}
	types := s.catalog.ProjectTypes()
	out := make([]transport.ProjectTypeResponse, len(types))
	for i, pt := range types {
		out[i] = transport.ProjectTypeResponse{ID: pt.ID, Label: pt.Label}
	}
	return transport.FormOptionsResponse{Services: list.Services, ProjectTypes: out}, nil
}
