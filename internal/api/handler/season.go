package handler

import (
	"net/http"

	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// GetSeasonAverages returns per-manager averages over completed weeks.
// @Summary Get season averages
// @Description Averages each category over the weeks in which the manager completed at least one game. Percentages are rounded to 3 decimals, counts and games played to 1.
// @Tags season
// @Produce json
// @Success 200 {object} dashboard.AveragesReport
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/season/averages [get]
func (h *Handler) GetSeasonAverages(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "averages", func(records []provider.Record) (interface{}, error) {
		return dashboard.BuildAverages(records, h.cats), nil
	})
}

// GetSeasonHighsLows returns the season record book.
// @Summary Get season highs and lows
// @Description Returns the highest and lowest weekly value per category, excluding the current week and the configured anomalous weeks. The first occurrence wins ties.
// @Tags season
// @Produce json
// @Success 200 {object} dashboard.HighsLowsReport
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/season/highs-lows [get]
func (h *Handler) GetSeasonHighsLows(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "highs-lows", func(records []provider.Record) (interface{}, error) {
		return dashboard.BuildHighsLows(records, h.cats, h.anomalous), nil
	})
}
