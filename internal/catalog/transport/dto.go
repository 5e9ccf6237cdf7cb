package transport

import (
	"buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/rotator"
)

// ServiceSummary is one card on the services overview.
type ServiceSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Path             string `json:"path"`
	Cover            string `json:"cover,omitempty"`
}

// ServiceListResponse is the localized services overview.
type ServiceListResponse struct {
	Lang     string           `json:"lang"`
	Dir      string           `json:"dir"`
	Services []ServiceSummary `json:"services"`
}

// ServiceDetailResponse is a localized service page.
type ServiceDetailResponse struct {
	ID               string               `json:"id"`
	Lang             string               `json:"lang"`
	Dir              string               `json:"dir"`
	Translated       bool                 `json:"translated"`
	Title            string               `json:"title"`
	ShortDescription string               `json:"shortDescription"`
	LongDescription  string               `json:"longDescription"`
	Process          []string             `json:"process"`
	Testimonials     []domain.Testimonial `json:"testimonials"`
	Gallery          rotator.Descriptor   `json:"gallery"`
}

// PathEntry maps an identifier to its page path for static generation.
type PathEntry struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// PathsResponse lists every service page path.
type PathsResponse struct {
	Paths []PathEntry `json:"paths"`
}

// ProjectTypeResponse is one project type option.
type ProjectTypeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FormOptionsResponse lists the values the contact forms accept.
type FormOptionsResponse struct {
	Services     []ServiceSummary      `json:"services"`
	ProjectTypes []ProjectTypeResponse `json:"projectTypes"`
}
