package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type memStore struct {
	records []provider.Record
	err     error
}

func (m *memStore) Name() string                                  { return "memory" }
func (m *memStore) Save(context.Context, []provider.Record) error { return nil }
func (m *memStore) Load(context.Context) ([]provider.Record, error) {
	return m.records, m.err
}
func (m *memStore) SavedAt(context.Context) (time.Time, error) {
	return time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC), m.err
}
func (m *memStore) Close() error { return nil }

func row(manager string, week, completed int, pts, tov float64) provider.Record {
	return provider.Record{
		Manager: manager,
		Week:    week,
		Stats:   map[string]float64{"PTS": pts, "TO": tov, "FG%": 0.4567},
		Games:   provider.GamesPlayed{Completed: completed, Total: 30},
	}
}

func season() []provider.Record {
	return []provider.Record{
		row("Alpha", 1, 20, 400, 30), row("Bravo", 1, 22, 500, 40),
		row("Alpha", 2, 25, 600, 20), row("Bravo", 2, 24, 550, 45),
		row("Alpha", 3, 4, 90, 5), row("Bravo", 3, 0, 0, 0),
		row("Alpha", 4, 0, 0, 0), row("Bravo", 4, 0, 0, 0),
	}
}

func newTestRouter(t *testing.T, store table.Store) (http.Handler, *cache.Cache) {
	t.Helper()
	cfg := &config.Config{
		Categories:     league.DefaultCategories(),
		AnomalousWeeks: []int{1},
	}
	c := cache.New(true)
	t.Cleanup(c.Close)
	h := New(dashboard.NewSource(store, time.Hour, quiet), c, cfg, quiet)

	r := chi.NewRouter()
	r.Get("/", h.Page)
	r.Get("/charts/scatter", h.ChartScatter)
	r.Get("/health/table", h.HealthCheckTable)
	r.Get("/health/cache", h.HealthCheckCache)
	r.Get("/api/v1", h.APIInfo)
	r.Get("/api/v1/weeks", h.GetWeeks)
	r.Get("/api/v1/managers", h.GetManagers)
	r.Get("/api/v1/weeks/{week}", h.GetWeek)
	r.Get("/api/v1/weeks/{week}/ranks", h.GetWeekRanks)
	r.Get("/api/v1/season/averages", h.GetSeasonAverages)
	r.Get("/api/v1/season/highs-lows", h.GetSeasonHighsLows)
	return r, c
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestGetWeeks(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})

	rec := get(t, r, "/api/v1/weeks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var body dashboard.WeeksReport
	decode(t, rec, &body)
	assert.Equal(t, []int{1, 2, 3}, body.Weeks)
	require.NotNil(t, body.CurrentWeek)
	assert.Equal(t, 3, *body.CurrentWeek)

	again := get(t, r, "/api/v1/weeks")
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	notModified := get(t, r, "/api/v1/weeks", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, notModified.Code)
}

func TestGetManagers(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})
	rec := get(t, r, "/api/v1/managers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"managers":["Alpha","Bravo"]}`, rec.Body.String())
}

func TestGetWeek(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})

	rec := get(t, r, "/api/v1/weeks/2?manager=Bravo")
	require.Equal(t, http.StatusOK, rec.Code)
	var body dashboard.WeekReport
	decode(t, rec, &body)
	assert.Equal(t, 2, body.Week)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "Bravo", body.Rows[0].Manager)
	assert.Equal(t, "Bravo", body.Leaders["PTS"])

	all := get(t, r, "/api/v1/weeks/2")
	decode(t, all, &body)
	assert.Len(t, body.Rows, 2)
	assert.Equal(t, "Alpha", body.Leaders["PTS"])
}

func TestGetWeekErrors(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/v1/weeks/abc", http.StatusBadRequest, "INVALID_WEEK"},
		{"/api/v1/weeks/0", http.StatusBadRequest, "INVALID_WEEK"},
		{"/api/v1/weeks/4", http.StatusNotFound, "WEEK_NOT_FOUND"},
		{"/api/v1/weeks/9/ranks", http.StatusNotFound, "WEEK_NOT_FOUND"},
		{"/charts/scatter?category=XYZ", http.StatusBadRequest, "INVALID_CATEGORY"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, r, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestGetWeekRanks(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})
	rec := get(t, r, "/api/v1/weeks/2/ranks?manager=Bravo")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dashboard.RanksReport
	decode(t, rec, &body)
	require.Len(t, body.Ranks, 1)
	assert.Equal(t, 2, body.Ranks[0].Ranks["PTS"])
	assert.Equal(t, 2, body.Ranks[0].Ranks["TO"])
	assert.Equal(t, 1, body.Ranks[0].Ranks["FG%"], "tied values share rank 1")
}

func TestSeasonEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})

	rec := get(t, r, "/api/v1/season/averages")
	require.Equal(t, http.StatusOK, rec.Code)
	var avgs dashboard.AveragesReport
	decode(t, rec, &avgs)
	require.Len(t, avgs.Averages, 2)
	assert.Equal(t, 3, avgs.Averages[0].Weeks)
	assert.Equal(t, 2, avgs.Averages[1].Weeks)

	rec = get(t, r, "/api/v1/season/highs-lows")
	require.Equal(t, http.StatusOK, rec.Code)
	var hl dashboard.HighsLowsReport
	decode(t, rec, &hl)
	assert.Equal(t, []int{1}, hl.ExcludedWeeks)
	for _, e := range hl.Records {
		assert.Equal(t, 2, e.High.Week, "only week 2 is eligible for %s", e.Category)
	}
}

func TestMissingTable(t *testing.T) {
	store := &memStore{err: table.ErrUnavailable}
	r, _ := newTestRouter(t, store)

	for _, target := range []string{"/api/v1/weeks", "/api/v1/weeks/1", "/api/v1/season/averages", "/charts/scatter"} {
		rec := get(t, r, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "TABLE_UNAVAILABLE", target)
	}

	page := get(t, r, "/")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "season table is not available")

	health := get(t, r, "/health/table")
	assert.Equal(t, http.StatusServiceUnavailable, health.Code)

	store.err = nil
	store.records = season()
	assert.Equal(t, http.StatusOK, get(t, r, "/api/v1/weeks").Code, "recovers once the table appears")
}

func TestPage(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})

	rec := get(t, r, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "Week 3")
	assert.Contains(t, body, "Season Averages")
	assert.Contains(t, body, "Average Games Played")
	assert.Contains(t, body, "All Managers")

	ranks := get(t, r, "/?view=ranks&week=2&manager=Alpha").Body.String()
	assert.Contains(t, ranks, "Week 2")
	assert.Contains(t, ranks, "Managers: Alpha")

	scatter := get(t, r, "/?view=scatter&category=REB&manager=Alpha").Body.String()
	assert.Contains(t, scatter, `/charts/scatter?category=REB&amp;manager=Alpha`)

	missing := get(t, r, "/?week=4").Body.String()
	assert.Contains(t, missing, "Week 4 has no completed games")

	empty := get(t, r, "/?manager=Nobody").Body.String()
	assert.Contains(t, empty, "No data for the selected managers")
}

func TestPageWithNoStartedWeek(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: []provider.Record{row("Alpha", 1, 0, 0, 0)}})
	rec := get(t, r, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No week has completed games yet.")
}

func TestChartScatter(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})
	rec := get(t, r, "/charts/scatter?category=PTS")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "echarts"), "renders an echarts page")
	assert.Contains(t, body, "PTS by week")
	assert.Contains(t, body, "Alpha")
}

func TestHealthTableAndCache(t *testing.T) {
	r, c := newTestRouter(t, &memStore{records: season()})

	rec := get(t, r, "/health/table")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "loaded", body["table"])
	assert.Equal(t, float64(8), body["records"])
	assert.Equal(t, "2025-01-06T08:00:00Z", body["saved_at"])

	get(t, r, "/api/v1/weeks")
	assert.Equal(t, 1, c.Stats()["total_keys"])
	rec = get(t, r, "/health/cache")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIInfo(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{records: season()})
	rec := get(t, r, "/api/v1")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "memory", body["store"])
}
