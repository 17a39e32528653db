package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/jyoun110/FantasyComp/internal/api/respond"
	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/charts"
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

const defaultScatterCategory = "PTS"

// category resolves a category query value. Empty selects PTS, or the first
// category when PTS is not tracked.
func (h *Handler) category(name string) (league.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if c, ok := h.cats.ByName(defaultScatterCategory); ok {
			return c, nil
		}
		all := h.cats.All()
		if len(all) == 0 {
			return league.Category{}, fmt.Errorf("%w: no categories configured", errUnknownCategory)
		}
		return all[0], nil
	}
	c, ok := h.cats.ByName(name)
	if !ok {
		return league.Category{}, fmt.Errorf("%w: %q", errUnknownCategory, name)
	}
	return c, nil
}

// ChartScatter renders the per-week scatter of one category.
// @Summary Category scatter chart
// @Description Renders a standalone HTML scatter chart of one category by week, one series per manager. Missing values are gaps.
// @Tags charts
// @Produce html
// @Param category query string false "Category name (default PTS)"
// @Param manager query []string false "Manager filter (repeatable, empty = all)" collectionFormat(multi)
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /charts/scatter [get]
func (h *Handler) ChartScatter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat, err := h.category(q.Get("category"))
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown stat category", err.Error())
		return
	}
	managers := managerFilter(q)
	key := fmt.Sprintf("scatter:%s:%s", cat.Name, managerKey(managers))

	h.serve(w, r, key, cache.TTLChart, respond.WriteHTML, func(records []provider.Record) ([]byte, error) {
		var buf bytes.Buffer
		if err := charts.RenderScatter(&buf, records, cat, managers, charts.DefaultChartConfig()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}
