package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type memStore struct{ records []provider.Record }

func (m *memStore) Name() string                                    { return "memory" }
func (m *memStore) Save(context.Context, []provider.Record) error   { return nil }
func (m *memStore) Load(context.Context) ([]provider.Record, error) { return m.records, nil }
func (m *memStore) SavedAt(context.Context) (time.Time, error)      { return time.Now(), nil }
func (m *memStore) Close() error                                    { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Categories:        league.DefaultCategories(),
		AnomalousWeeks:    league.DefaultAnomalousWeeks,
		CORSAllowOrigins:  []string{"http://localhost:3000"},
		RateLimitEnabled:  true,
		RateLimitRequests: 4,
		RateLimitWindow:   time.Minute,
	}
}

func newServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	store := &memStore{records: []provider.Record{
		{Manager: "Alpha", Week: 1, Stats: map[string]float64{"PTS": 500}, Games: provider.GamesPlayed{Completed: 20, Total: 30}},
	}}
	c := cache.New(true)
	t.Cleanup(c.Close)
	return NewRouter(dashboard.NewSource(store, time.Hour, quiet), c, cfg, quiet)
}

func TestRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = false
	srv := newServer(t, cfg)

	for _, path := range []string{
		"/", "/health", "/health/table", "/health/cache", "/api/v1",
		"/api/v1/weeks", "/api/v1/weeks/1", "/api/v1/weeks/1/ranks", "/api/v1/managers",
		"/api/v1/season/averages", "/api/v1/season/highs-lows",
		"/charts/scatter?category=PTS", "/docs/index.html",
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Process-Time"), path)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	assert.NotEqual(t, http.StatusNotFound, rec.Code, "mcp endpoint is mounted")
}

func TestCORS(t *testing.T) {
	srv := newServer(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weeks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	srv := newServer(t, testConfig())

	var last int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		last = rec.Code
		if last == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			break
		}
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
