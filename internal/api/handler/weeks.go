package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jyoun110/FantasyComp/internal/api/respond"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

var errUnknownCategory = errors.New("unknown category")

// parseWeek validates a week parameter. An empty string means the current
// week and returns 0.
func parseWeek(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(s)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("week must be a positive integer, got %q", s)
	}
	return week, nil
}

// managerFilter returns the non-blank manager query values.
func managerFilter(q url.Values) []string {
	var out []string
	for _, m := range q["manager"] {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// managerKey is an order-independent cache key fragment for a filter.
func managerKey(managers []string) string {
	if len(managers) == 0 {
		return "all"
	}
	sorted := slices.Clone(managers)
	slices.Sort(sorted)
	return url.Values{"m": sorted}.Encode()
}

// GetWeeks returns the selectable weeks.
// @Summary Get available weeks
// @Description Returns the weeks with at least one completed game, the current week, and the managers in table order.
// @Tags weeks
// @Produce json
// @Success 200 {object} dashboard.WeeksReport
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/weeks [get]
func (h *Handler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "weeks", func(records []provider.Record) (interface{}, error) {
		return dashboard.BuildWeeks(records), nil
	})
}

// GetManagers returns the managers in table order.
// @Summary Get managers
// @Description Returns every manager in order of first appearance in the season table.
// @Tags weeks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/managers [get]
func (h *Handler) GetManagers(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "managers", func(records []provider.Record) (interface{}, error) {
		return map[string]interface{}{"managers": dashboard.BuildWeeks(records).Managers}, nil
	})
}

// GetWeek returns the weekly comparison for one week.
// @Summary Get weekly comparison
// @Description Returns one week's rows, optionally filtered to some managers, with the leader of each category among the rows shown.
// @Tags weeks
// @Produce json
// @Param week path int true "Week number"
// @Param manager query []string false "Manager filter (repeatable, empty = all)" collectionFormat(multi)
// @Success 200 {object} dashboard.WeekReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/weeks/{week} [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(chi.URLParam(r, "week"))
	if err != nil || week == 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_WEEK", "week must be a positive integer")
		return
	}
	managers := managerFilter(r.URL.Query())
	key := fmt.Sprintf("week:%d:%s", week, managerKey(managers))

	h.serveJSON(w, r, key, func(records []provider.Record) (interface{}, error) {
		return dashboard.BuildWeek(records, week, managers, h.cats)
	})
}

// GetWeekRanks returns the dense rank matrix for one week.
// @Summary Get weekly ranks
// @Description Ranks every team of a week per category (1 = best, ties share a rank, turnovers ascending). The manager filter limits the rows returned, not the ranking.
// @Tags weeks
// @Produce json
// @Param week path int true "Week number"
// @Param manager query []string false "Manager filter (repeatable, empty = all)" collectionFormat(multi)
// @Success 200 {object} dashboard.RanksReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/weeks/{week}/ranks [get]
func (h *Handler) GetWeekRanks(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(chi.URLParam(r, "week"))
	if err != nil || week == 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_WEEK", "week must be a positive integer")
		return
	}
	managers := managerFilter(r.URL.Query())
	key := fmt.Sprintf("ranks:%d:%s", week, managerKey(managers))

	h.serveJSON(w, r, key, func(records []provider.Record) (interface{}, error) {
		return dashboard.BuildRanks(records, week, managers, h.cats)
	})
}
