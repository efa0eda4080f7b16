package api

import (
	"net/http"

	"erp/api/health"
	"erp/api/middleware"
	"erp/config"

	"github.com/gin-gonic/gin"
)

// Controller registers its routes under the versioned group
type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Router owns the gin engine and its middleware chain
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	controllers      []Controller
}

// NewRouter creates the engine. Middleware order matters: the request id
// comes first so every later log line carries it.
func NewRouter(cfg *config.Config, healthController *health.Controller, controllers ...Controller) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		controllers:      controllers,
	}
}

// SetupRoutes registers every controller under /api/v1
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	r.healthController.RegisterRoutes(apiGroup)
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine, used as the http.Server handler
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
