package sitemap

import (
	catalog "buildcare_site/internal/catalog/service"
	content "buildcare_site/internal/content/domain"
	apphttp "buildcare_site/internal/http"
)

// Module wires the sitemap, robots, manifest and contact card routes.
type Module struct {
	handler *Handler
}

func NewModule(c *catalog.Service, resolver *content.Resolver, cfg Config) *Module {
	return &Module{handler: NewHandler(NewService(c, resolver, cfg))}
}

func (m *Module) Name() string {
	return "sitemap"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/sitemap.xml", m.handler.Sitemap)
	ctx.Engine.GET("/robots.txt", m.handler.Robots)
	ctx.Engine.GET("/manifest.webmanifest", m.handler.Manifest)
	ctx.V1.GET("/contact-card", m.handler.ContactCard)
	ctx.V1.GET("/contact-card/qr.png", m.handler.ContactQR)
}

var _ apphttp.Module = (*Module)(nil)
