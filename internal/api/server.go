package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/jyoun110/FantasyComp/internal/api/handler"
	"github.com/jyoun110/FantasyComp/internal/api/mcptools"
	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(src *dashboard.Source, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Mcp-Session-Id"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(src, appCache, cfg, logger)

	// --- Routes ---

	// Dashboard page and chart
	r.Get("/", h.Page)
	r.Get("/charts/scatter", h.ChartScatter)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/table", h.HealthCheckTable)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// MCP tools (streamable HTTP)
	r.Handle("/mcp", mcptools.Handler(mcptools.NewServer(src, cfg, logger)))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", h.APIInfo)

		r.Get("/weeks", h.GetWeeks)
		r.Get("/weeks/{week}", h.GetWeek)
		r.Get("/weeks/{week}/ranks", h.GetWeekRanks)
		r.Get("/managers", h.GetManagers)

		r.Get("/season/averages", h.GetSeasonAverages)
		r.Get("/season/highs-lows", h.GetSeasonHighsLows)
	})

	return r
}
