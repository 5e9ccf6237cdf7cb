package handler

import (
	"net/http"

	"buildcare_site/internal/content/domain"
	"buildcare_site/internal/content/transport"
	"buildcare_site/platform/config"
	"buildcare_site/platform/httpkit"
	"buildcare_site/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves dictionary lookups and language switching.
type Handler struct {
	resolver *domain.Resolver
	val      *validator.Validator
	cfg      config.LanguageConfig
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new content handler.
func New(resolver *domain.Resolver, val *validator.Validator, cfg config.LanguageConfig) *Handler {
	return &Handler{resolver: resolver, val: val, cfg: cfg}
}

// GetContent returns the whole dictionary for the request language.
// GET /api/v1/content
func (h *Handler) GetContent(c *gin.Context) {
	lang := RequestLanguage(c)
	httpkit.OK(c, transport.ContentResponse{
		Lang:       string(lang),
		Dir:        string(h.resolver.Direction(lang)),
		Dictionary: h.resolver.Dictionary(lang),
	})
}

// GetText resolves one "section.field" key.
// GET /api/v1/content/text/:key
func (h *Handler) GetText(c *gin.Context) {
	lang := RequestLanguage(c)
	key := c.Param("key")

	value, err := h.resolver.Text(lang, key)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.TextResponse{
		Key:   key,
		Value: value,
		Lang:  string(lang),
		Dir:   string(h.resolver.Direction(lang)),
	})
}

// SetLanguage switches to the requested language, or toggles when none is
// given, and persists the choice in the language cookie.
// POST /api/v1/language
func (h *Handler) SetLanguage(c *gin.Context) {
	var req transport.SetLanguageRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	next := RequestLanguage(c).Other()
	if req.Lang != "" {
		next = domain.Language(req.Lang)
	}

	SetLanguageCookie(c, h.cfg, next)
	httpkit.OK(c, transport.LanguageResponse{
		Lang: string(next),
		Dir:  string(domain.Direction(next)),
	})
}
