package sitemap

import (
	"net/http"

	contenthandler "buildcare_site/internal/content/handler"
	"buildcare_site/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the site surfaces.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.svc.Sitemap()
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots handles GET /robots.txt
func (h *Handler) Robots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.String(http.StatusOK, h.svc.Robots())
}

// Manifest handles GET /manifest.webmanifest
func (h *Handler) Manifest(c *gin.Context) {
	c.Header("Content-Type", "application/manifest+json; charset=utf-8")
	c.JSON(http.StatusOK, h.svc.Manifest(contenthandler.RequestLanguage(c)))
}

// ContactCard handles GET /api/v1/contact-card
func (h *Handler) ContactCard(c *gin.Context) {
	card, err := h.svc.ContactCard(contenthandler.RequestLanguage(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, card)
}

// ContactQR handles GET /api/v1/contact-card/qr.png
func (h *Handler) ContactQR(c *gin.Context) {
	png, err := h.svc.ContactQR(contenthandler.RequestLanguage(c))
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
