// Package router assembles the gin engine from the application modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "buildcare_site/internal/http"
	"buildcare_site/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the engine: platform middleware first, then module routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.Recovery(app.Logger))
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))
	for _, mw := range app.Middleware {
		engine.Use(mw)
	}

	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "Not found", nil)
	})

	engine.GET("/api/health", func(c *gin.Context) {
		httpkit.OK(c, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := app.Health.Ping(ctx); err != nil {
				_ = c.Error(err)
				httpkit.Error(c, http.StatusServiceUnavailable, "not ready", nil)
				return
			}
		}
		httpkit.OK(c, gin.H{"status": "ready"})
	})

	api := engine.Group("/api")
	v1 := api.Group("/v1")
	if perSecond := app.Config.GetAPIRatePerSecond(); perSecond > 0 {
		burst := int(perSecond * 2)
		v1.Use(httpkit.NewIPRateLimiter(rate.Limit(perSecond), burst, app.Logger).RateLimit())
	}

	var admin *gin.RouterGroup
	if app.Config.IsAdminEnabled() {
		admin = v1.Group("/admin")
		admin.Use(httpkit.AuthRequired(app.Config), httpkit.RequireRole(httpkit.RoleAdmin))
	}

	routerCtx := &apphttp.RouterContext{
		Engine:        engine,
		API:           api,
		V1:            v1,
		Admin:         admin,
		Config:        app.Config,
		IntakeLimiter: httpkit.NewPerMinuteLimiter(app.Config.GetInquiryRatePerMinute(), app.Config.GetInquiryRateBurst(), app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID, "Content-Language"},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	return corsCfg
}
