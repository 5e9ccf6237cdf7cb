// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"buildcare_site/platform/config"
	"buildcare_site/platform/events"
	"buildcare_site/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
	IsAdminEnabled() bool
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (optional index database).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Middleware runs on every route after the platform middleware.
	Middleware []gin.HandlerFunc
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
