// Package handler provides HTTP handlers for the dashboard endpoints.
// Every view is computed from the cached season table; rendered responses
// are cached per table snapshot and served with ETags.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jyoun110/FantasyComp/internal/api/respond"
	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	src       *dashboard.Source
	cache     *cache.Cache
	cfg       *config.Config
	cats      league.Categories
	anomalous league.WeekSet
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(src *dashboard.Source, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		src:       src,
		cache:     c,
		cfg:       cfg,
		cats:      cfg.Categories,
		anomalous: cfg.AnomalousWeekSet(),
		logger:    logger,
	}
}

// APIInfo serves API info at /api/v1.
// @Summary API info
// @Description Returns API name, version, status, and the configured table store.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *Handler) APIInfo(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":       "FantasyComp Dashboard API",
		"version":    "1.0.0",
		"status":     "running",
		"docs":       "/docs/",
		"mcp":        "/mcp",
		"store":      h.src.Store().Name(),
		"categories": h.cats.Names(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckTable verifies the season table can be loaded.
// @Summary Season table health check
// @Description Loads the season table and reports when it was last saved.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/table [get]
func (h *Handler) HealthCheckTable(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	snap, err := h.src.Table(r.Context())
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"table":     "unavailable",
			"error":     err.Error(),
			"source":    h.src.Status(),
			"timestamp": now,
		})
		return
	}
	body := map[string]interface{}{
		"status":    "healthy",
		"table":     "loaded",
		"records":   len(snap.Records),
		"source":    h.src.Status(),
		"timestamp": now,
	}
	if saved, err := h.src.Store().SavedAt(r.Context()); err == nil {
		body["saved_at"] = saved.UTC().Format(time.RFC3339)
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, purges).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Cached rendering
// --------------------------------------------------------------------------

type writeFunc func(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool)

// serveJSON loads the table, then serves build's result as JSON from the
// cache or freshly marshaled.
func (h *Handler) serveJSON(w http.ResponseWriter, r *http.Request, key string, build func([]provider.Record) (interface{}, error)) {
	h.serve(w, r, key, cache.TTLTableViews, respond.WriteJSON, func(records []provider.Record) ([]byte, error) {
		v, err := build(records)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
}

// serve keys the cache by the snapshot load time so a reloaded table never
// serves responses rendered from the previous one.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, write writeFunc, render func([]provider.Record) ([]byte, error)) {
	snap, err := h.src.Table(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	h.serveSnapshot(w, r, snap, key, ttl, write, render)
}

func (h *Handler) serveSnapshot(w http.ResponseWriter, r *http.Request, snap *dashboard.Snapshot, key string, ttl time.Duration, write writeFunc, render func([]provider.Record) ([]byte, error)) {
	cacheKey := fmt.Sprintf("%s@%d", key, snap.LoadedAt.UnixNano())

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		write(w, data, etag, ttl, true)
		return
	}

	data, err := render(snap.Records)
	if err != nil {
		h.writeRenderError(w, key, err)
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	write(w, data, etag, ttl, false)
}

func (h *Handler) writeRenderError(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, dashboard.ErrWeekNotAvailable):
		respond.WriteErrorDetail(w, http.StatusNotFound, "WEEK_NOT_FOUND", "Week has no completed games", err.Error())
	case errors.Is(err, errUnknownCategory):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown stat category", err.Error())
	default:
		h.logger.Error("Render failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render response")
	}
}

func writeUnavailable(w http.ResponseWriter, err error) {
	respond.WriteErrorDetail(w, http.StatusServiceUnavailable, "TABLE_UNAVAILABLE",
		"Season table is not available; run the extractor first", err.Error())
}
