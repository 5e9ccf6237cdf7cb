package transport

import "buildcare_site/internal/inquiry/service"

// SubmitResponse acknowledges an accepted inquiry.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=200"`
	Password string `json:"password" validate:"required,max=200"`
}

// ListInquiriesRequest pages the admin listing.
type ListInquiriesRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

// ListInquiriesResponse is the admin listing.
type ListInquiriesResponse struct {
	Items []service.RecordView `json:"items"`
	Count int                  `json:"count"`
}
