// Package catalog provides the service catalog bounded context module.
// The catalog is compiled into the binary and read-only at runtime.
package catalog

import (
	"buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/catalog/handler"
	"buildcare_site/internal/catalog/service"
	content "buildcare_site/internal/content/domain"
	apphttp "buildcare_site/internal/http"
	"buildcare_site/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(c *domain.Catalog, resolver *content.Resolver, log *logger.Logger) *Module {
	svc := service.New(c, resolver, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/services", m.handler.List)
	ctx.V1.GET("/services/paths", m.handler.Paths)
	ctx.V1.GET("/services/:id", m.handler.GetByID)
	ctx.V1.GET("/services/:id/gallery", m.handler.Gallery)
	ctx.V1.GET("/form-options", m.handler.FormOptions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
