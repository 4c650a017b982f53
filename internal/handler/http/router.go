package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barkeep-app/search/pkg/health"
	"github.com/barkeep-app/search/pkg/middleware"

	"github.com/barkeep-app/search/internal/service"
)

// RouterConfig holds dependencies and settings for the HTTP router.
type RouterConfig struct {
	SearchService *service.SearchService
	Reindexer     *service.Reindexer
	HealthHandler *health.Handler
	Environment   string
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all search service routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("search"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	handler := NewSearchHandler(cfg.SearchService, cfg.Reindexer, cfg.Logger)

	r.Route("/api/v1/cocktails", func(r chi.Router) {
		r.Post("/search", handler.Search)
		r.Get("/search", handler.List)

		r.Post("/reindex", handler.Reindex)
	})

	return r
}
