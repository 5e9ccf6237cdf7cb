// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"buildcare_site/platform/config"
	"buildcare_site/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for routes outside /api (sitemap, robots).
	Engine *gin.Engine
	// API is the bare /api group used by the legacy contact route.
	API *gin.RouterGroup
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Admin is the admin-only route group under /api/v1/admin.
	// Nil when no admin credentials are configured.
	Admin *gin.RouterGroup
	// Config is the JWT configuration for token issuance.
	Config config.JWTConfig
	// IntakeLimiter is the stricter per-IP limiter for form submissions.
	IntakeLimiter *httpkit.IPRateLimiter
}
