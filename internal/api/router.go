package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/psbt-apis/internal/api/handlers"
	"github.com/thanhnp/psbt-apis/internal/api/middleware"
	"github.com/thanhnp/psbt-apis/internal/config"
	"github.com/thanhnp/psbt-apis/internal/storage"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine         *gin.Engine
	version        string
	psbtHandler    *handlers.PsbtHandler
	summaryHandler *handlers.SummaryHandler
}

// NewRouter creates a new Router with all handlers. store is nil when
// history is disabled.
func NewRouter(cfg *config.Config, store *storage.SummaryStore, version string) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:         gin.New(),
		version:        version,
		psbtHandler:    handlers.NewPsbtHandler(store, cfg.Network()),
		summaryHandler: handlers.NewSummaryHandler(store, cfg.History.ListLimit),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "health check")
	})
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": r.version})
	})

	r.engine.POST("/parse_psbt", r.psbtHandler.Parse)

	// API v1 routes
	v1 := r.engine.Group("/api/v1/:network")
	v1.Use(middleware.ValidateNetwork())
	{
		v1.POST("/psbt", r.psbtHandler.ParseForNetwork)

		summaries := v1.Group("/summaries")
		{
			summaries.GET("", r.summaryHandler.List)
			summaries.GET("/:txid", r.summaryHandler.Get)
			summaries.GET("/:txid/psbt", r.summaryHandler.GetPsbt)
			summaries.DELETE("/:txid", r.summaryHandler.Delete)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// PsbtHandler returns the parse handler, shared with the single-shot CLI
func (r *Router) PsbtHandler() *handlers.PsbtHandler {
	return r.psbtHandler
}
