// Package domain defines the inquiry submitted through the contact forms
// and the rules it must satisfy.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Variant selects which form an inquiry came from.
type Variant string

const (
	// VariantService is the contact page form: a catalog service and an
	// optional attachment.
	VariantService Variant = "service"
	// VariantProject is the quote form: a project type and an optional company.
	VariantProject Variant = "project"
)

// Field names, shared by the forms, the validator and the error map.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldCompany     = "company"
	FieldService     = "service"
	FieldProjectType = "projectType"
	FieldMessage     = "message"
	FieldFile        = "file"
)

// Fields are the raw values a visitor typed.
type Fields struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Company     string `json:"company,omitempty" form:"company"`
	Service     string `json:"service,omitempty" form:"service"`
	ProjectType string `json:"projectType,omitempty" form:"projectType"`
	Message     string `json:"message" form:"message"`
}

// Get returns the value of a named field.
func (f Fields) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldCompany:
		return f.Company
	case FieldService:
		return f.Service
	case FieldProjectType:
		return f.ProjectType
	case FieldMessage:
		return f.Message
	}
	return ""
}

// With returns a copy of f with one field replaced. Unknown names are ignored.
func (f Fields) With(field, value string) Fields {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldCompany:
		f.Company = value
	case FieldService:
		f.Service = value
	case FieldProjectType:
		f.ProjectType = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Fields) Trimmed() Fields {
	return Fields{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Company:     strings.TrimSpace(f.Company),
		Service:     strings.TrimSpace(f.Service),
		ProjectType: strings.TrimSpace(f.ProjectType),
		Message:     strings.TrimSpace(f.Message),
	}
}

// VariantOf infers the form variant from which selector was filled in.
func VariantOf(f Fields) Variant {
	if strings.TrimSpace(f.Service) == "" && strings.TrimSpace(f.ProjectType) != "" {
		return VariantProject
	}
	return VariantService
}

// SelectorField is the field holding the service or project type choice.
func (v Variant) SelectorField() string {
	if v == VariantProject {
		return FieldProjectType
	}
	return FieldService
}

// RequiredFields lists the fields that must be present for v.
func RequiredFields(v Variant) []string {
	return []string{FieldName, FieldEmail, FieldPhone, v.SelectorField(), FieldMessage}
}

// Attachment describes a stored upload.
type Attachment struct {
	Key         string     `json:"key"`
	ObjectKey   string     `json:"objectKey,omitempty"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	CapturedAt  *time.Time `json:"capturedAt,omitempty"`
}

// Record is one accepted inquiry as persisted.
type Record struct {
	ID          uuid.UUID   `json:"id"`
	ReceivedAt  time.Time   `json:"receivedAt"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	PhoneE164   string      `json:"phoneE164,omitempty"`
	Company     string      `json:"company,omitempty"`
	Service     string      `json:"service,omitempty"`
	ProjectType string      `json:"projectType,omitempty"`
	Message     string      `json:"message"`
	HasFile     bool        `json:"hasFile"`
	FileName    string      `json:"fileName,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	Variant     Variant     `json:"variant"`
	Language    string      `json:"language"`
	SourceIP    string      `json:"sourceIp,omitempty"`
}

// ReceivedAtMillis is the receipt timestamp used to name stored units.
func (r Record) ReceivedAtMillis() int64 {
	return r.ReceivedAt.UnixMilli()
}
