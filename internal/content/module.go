// Package content provides the bilingual content bounded context module.
// It owns the locale dictionaries and the request language.
package content

import (
	catalog "buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/content/domain"
	"buildcare_site/internal/content/handler"
	apphttp "buildcare_site/internal/http"
	"buildcare_site/platform/config"
	"buildcare_site/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the content bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	resolver *domain.Resolver
	cfg      config.LanguageConfig
}

// NewModule loads the embedded dictionaries against the catalog.
func NewModule(c *catalog.Catalog, val *validator.Validator, cfg config.LanguageConfig) (*Module, error) {
	bundle, err := domain.LoadEmbedded(c)
	if err != nil {
		return nil, err
	}
	resolver := domain.NewResolver(bundle, c)

	return &Module{
		handler:  handler.New(resolver, val, cfg),
		resolver: resolver,
		cfg:      cfg,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "content"
}

// Resolver returns the resolver for other modules.
func (m *Module) Resolver() *domain.Resolver {
	return m.resolver
}

// Middleware returns the language negotiation middleware. It must run ahead
// of every route that produces text.
func (m *Module) Middleware() gin.HandlerFunc {
	return handler.Negotiate(m.cfg)
}

// RegisterRoutes mounts content routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/content", m.handler.GetContent)
	ctx.V1.GET("/content/text/:key", m.handler.GetText)
	ctx.V1.POST("/language", m.handler.SetLanguage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
