package handler

import (
	"buildcare_site/internal/catalog/service"
	contenthandler "buildcare_site/internal/content/handler"
	"buildcare_site/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns every service in the request language.
// GET /api/v1/services
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(contenthandler.RequestLanguage(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Paths returns the page path of every service.
// GET /api/v1/services/paths
func (h *Handler) Paths(c *gin.Context) {
	httpkit.OK(c, h.svc.Paths())
}

// GetByID returns one localized service page.
// GET /api/v1/services/:id
func (h *Handler) GetByID(c *gin.Context) {
	result, err := h.svc.Get(contenthandler.RequestLanguage(c), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Gallery returns how a service's images rotate.
// GET /api/v1/services/:id/gallery
func (h *Handler) Gallery(c *gin.Context) {
	result, err := h.svc.Gallery(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// FormOptions returns the values accepted by the contact forms.
// GET /api/v1/form-options
func (h *Handler) FormOptions(c *gin.Context) {
	result, err := h.svc.FormOptions(contenthandler.RequestLanguage(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
