package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/use-agent/ldgen/api/handler"
	"github.com/use-agent/ldgen/api/middleware"
	"github.com/use-agent/ldgen/batch"
	"github.com/use-agent/ldgen/cache"
	"github.com/use-agent/ldgen/config"
	"github.com/use-agent/ldgen/webhook"
)

// Deps are the services the API handlers call into.
type Deps struct {
	Driver     *batch.Driver
	Store      *cache.Store
	Notifier   *webhook.Notifier
	EngineName string
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health is outside the rate limit so monitoring probes always work.
func NewRouter(deps Deps, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(deps.Store, deps.EngineName, startTime))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	// Schemas
	limited.POST("/schemas", handler.PostSchemas(deps.Driver, deps.Store, deps.Notifier, cfg.Batch.MaxConcurrency))
	limited.POST("/schemas/render", handler.Render())
	limited.GET("/schemas/:id", handler.GetSchemas(deps.Store))
	limited.PUT("/schemas/:id/items/:number/title", handler.PutTitle(deps.Store))

	// Export
	limited.GET("/schemas/:id/export", handler.ExportBatch(deps.Store))
	limited.POST("/export", handler.PostExport())

	return r
}

// WithCORS wraps h so browsers on the given origins can call the API.
// The export endpoints' Content-Disposition header is exposed for downloads.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler(h)
}
