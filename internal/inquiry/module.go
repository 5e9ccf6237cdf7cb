// Package inquiry provides the contact intake bounded context module.
// It validates inquiries, stores them in every configured sink and exposes
// the stored inquiries to staff.
package inquiry

import (
	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/events"
	apphttp "buildcare_site/internal/http"
	"buildcare_site/internal/inquiry/domain"
	"buildcare_site/internal/inquiry/handler"
	"buildcare_site/internal/inquiry/repository"
	"buildcare_site/internal/inquiry/service"
	"buildcare_site/platform/config"
	"buildcare_site/platform/logger"
	"buildcare_site/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the inquiry module needs from the application config.
type Config interface {
	service.Config
	config.AdminConfig
	GetInquiryStorageDir() string
	GetMinioBucketInquiries() string
}

// Deps are the optional backends. A nil Pool disables the Postgres index and
// the admin listing; a nil Objects disables the object store.
type Deps struct {
	Pool    *pgxpool.Pool
	Objects storage.StorageService
	Bus     events.Bus
}

// Module is the inquiry bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	stores  []repository.RecordStore
}

// NewModule wires the sinks and services. The filesystem sink is always on.
func NewModule(opts domain.Options, cfg Config, deps Deps, val *validator.Validator, log *logger.Logger) (*Module, error) {
	fileStore, err := repository.NewFileStore(cfg.GetInquiryStorageDir())
	if err != nil {
		return nil, err
	}
	stores := []repository.RecordStore{fileStore}

	if deps.Objects != nil {
		stores = append(stores, repository.NewObjectStore(deps.Objects, cfg.GetMinioBucketInquiries()))
	}

	var index repository.Index
	if deps.Pool != nil {
		pg := repository.NewPostgresIndex(deps.Pool)
		stores = append(stores, pg)
		index = pg
	}

	svc := service.New(domain.NewValidator(opts), stores, deps.Objects != nil, deps.Bus, cfg, log)
	admin := service.NewAdminService(cfg, index, deps.Objects, cfg.GetMinioBucketInquiries(), log)

	return &Module{
		handler: handler.New(svc, admin, val, cfg.GetInquiryMaxFileSize()),
		service: svc,
		stores:  stores,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inquiry"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Sinks lists the names of the active storage sinks.
func (m *Module) Sinks() []string {
	names := make([]string, len(m.stores))
	for i, s := range m.stores {
		names[i] = s.Name()
	}
	return names
}

// RegisterRoutes mounts inquiry routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limit := ctx.IntakeLimiter.RateLimit()
	ctx.API.POST("/contact", limit, m.handler.Submit)
	ctx.V1.POST("/inquiries", limit, m.handler.Submit)

	if ctx.Admin != nil {
		ctx.V1.POST("/admin/login", limit, m.handler.Login)
		ctx.Admin.GET("/inquiries", m.handler.List)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
