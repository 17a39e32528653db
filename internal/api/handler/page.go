package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/jyoun110/FantasyComp/internal/api/respond"
	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// View modes of the weekly section.
const (
	ViewTable   = "table"
	ViewRanks   = "ranks"
	ViewScatter = "scatter"
)

var viewModes = []option{
	{Value: ViewTable, Label: "Raw Table"},
	{Value: ViewRanks, Label: "Rank Matrix"},
	{Value: ViewScatter, Label: "Scatter Comparison"},
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Store      string
	Message    string
	Weeks      []option
	Week       int
	Managers   []option
	FilterText string
	Views      []option
	View       string
	Categories []option
	WeekGrid   view.Grid
	WeekNote   string
	ChartURL   string
	Averages   view.Grid
	HighsLows  view.Grid
	Excluded   string
}

func (v pageView) ShowScatter() bool { return v.View == ViewScatter }

// pageQuery is the parsed dashboard query string.
type pageQuery struct {
	week     int
	weekErr  error
	managers []string
	view     string
	category string
}

func parsePageQuery(q url.Values) pageQuery {
	pq := pageQuery{
		managers: managerFilter(q),
		view:     strings.ToLower(strings.TrimSpace(q.Get("view"))),
		category: strings.TrimSpace(q.Get("category")),
	}
	pq.week, pq.weekErr = parseWeek(strings.TrimSpace(q.Get("week")))
	switch pq.view {
	case ViewTable, ViewRanks, ViewScatter:
	default:
		pq.view = ViewTable
	}
	return pq
}

func (pq pageQuery) key() string {
	week := fmt.Sprint(pq.week)
	if pq.weekErr != nil {
		week = "bad"
	}
	return fmt.Sprintf("page:%s:%s:%s:%s", week, pq.view, pq.category, managerKey(pq.managers))
}

// Page renders the HTML dashboard.
// @Summary Dashboard page
// @Description Renders the dashboard: a weekly section (raw table, rank matrix, or scatter comparison) plus season averages and highs/lows. A missing table renders an inline message instead of failing.
// @Tags dashboard
// @Produce html
// @Param week query int false "Week (default current week)"
// @Param manager query []string false "Manager filter (repeatable, empty = all)" collectionFormat(multi)
// @Param view query string false "Weekly view" Enums(table, ranks, scatter)
// @Param category query string false "Scatter category (default PTS)"
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	pq := parsePageQuery(r.URL.Query())

	snap, err := h.src.Table(r.Context())
	if err != nil {
		data, rerr := renderPage(pageView{
			Store:   h.src.Store().Name(),
			Message: "The season table is not available yet. Run the extractor, then reload this page.",
			View:    pq.view,
			Views:   selectOptions(viewModes, pq.view),
		})
		if rerr != nil {
			h.writeRenderError(w, "page", rerr)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	h.serveSnapshot(w, r, snap, pq.key(), cache.TTLTableViews, respond.WriteHTML, func(records []provider.Record) ([]byte, error) {
		return renderPage(h.buildPage(records, pq))
	})
}

func (h *Handler) buildPage(records []provider.Record, pq pageQuery) pageView {
	weeks := dashboard.BuildWeeks(records)
	pv := pageView{
		Store:      h.src.Store().Name(),
		View:       pq.view,
		Views:      selectOptions(viewModes, pq.view),
		FilterText: "All Managers",
	}
	if len(pq.managers) > 0 {
		pv.FilterText = strings.Join(pq.managers, ", ")
	}

	selected := make(map[string]bool, len(pq.managers))
	for _, m := range pq.managers {
		selected[m] = true
	}
	for _, m := range weeks.Managers {
		pv.Managers = append(pv.Managers, option{Value: m, Label: m, Selected: selected[m]})
	}

	avgs := dashboard.BuildAverages(records, h.cats)
	pv.Averages = avgs.Grid
	hl := dashboard.BuildHighsLows(records, h.cats, h.anomalous)
	pv.HighsLows = hl.Grid
	pv.Excluded = joinWeeks(hl.CurrentWeek, hl.ExcludedWeeks)

	if weeks.CurrentWeek == nil {
		pv.Message = "No week has completed games yet."
		return pv
	}

	week := pq.week
	if pq.weekErr != nil {
		pv.WeekNote = pq.weekErr.Error() + "; showing the current week."
		week = 0
	} else if _, err := dashboard.ResolveWeek(records, week); err != nil {
		pv.WeekNote = fmt.Sprintf("Week %d has no completed games; showing the current week.", week)
		week = 0
	}
	if week == 0 {
		week = *weeks.CurrentWeek
	}
	pv.Week = week
	for _, wk := range weeks.Weeks {
		pv.Weeks = append(pv.Weeks, option{Value: fmt.Sprint(wk), Label: fmt.Sprintf("Week %d", wk), Selected: wk == week})
	}

	cat, err := h.category(pq.category)
	if err != nil {
		cat, _ = h.category("")
		if pq.view == ViewScatter {
			pv.WeekNote = fmt.Sprintf("Unknown category %q; showing %s.", pq.category, cat.Name)
		}
	}
	for _, c := range h.cats.All() {
		pv.Categories = append(pv.Categories, option{Value: c.Name, Label: c.Name, Selected: c.Name == cat.Name})
	}

	switch pq.view {
	case ViewRanks:
		if rep, err := dashboard.BuildRanks(records, week, pq.managers, h.cats); err == nil {
			pv.WeekGrid = rep.Grid
		}
	case ViewScatter:
		q := url.Values{"category": {cat.Name}}
		for _, m := range pq.managers {
			q.Add("manager", m)
		}
		pv.ChartURL = "/charts/scatter?" + q.Encode()
	default:
		if rep, err := dashboard.BuildWeek(records, week, pq.managers, h.cats); err == nil {
			pv.WeekGrid = rep.Grid
		}
	}
	if pq.view != ViewScatter && pv.WeekGrid.Empty() && pv.WeekNote == "" {
		pv.WeekNote = "No data for the selected managers in this week."
	}
	return pv
}

func renderPage(pv pageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "dashboard.html", pv); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

func selectOptions(opts []option, value string) []option {
	out := make([]option, len(opts))
	for i, o := range opts {
		o.Selected = o.Value == value
		out[i] = o
	}
	return out
}

func joinWeeks(current *int, anomalous []int) string {
	var parts []string
	if current != nil {
		parts = append(parts, fmt.Sprintf("current week %d", *current))
	}
	if len(anomalous) > 0 {
		ws := make([]string, len(anomalous))
		for i, w := range anomalous {
			ws[i] = fmt.Sprint(w)
		}
		parts = append(parts, "weeks "+strings.Join(ws, ", "))
	}
	return strings.Join(parts, "; ")
}
