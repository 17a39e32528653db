// Package charts renders the category comparison chart with go-echarts.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string // e.g. "100%"
	Height   string // e.g. "480px"
	Theme    string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "100%",
		Height: "480px",
		Theme:  "light",
	}
}

// missing is the value echarts treats as a gap.
const missing = "-"

// Series is one manager's values over the plotted weeks. Missing values are
// nil.
type Series struct {
	Manager string
	Values  []*float64
}

// ScatterData collects, for one category, a series per manager over the
// available weeks. A non-empty managers list restricts and orders the series.
func ScatterData(rows []provider.Record, cat league.Category, managers []string) (weeks []int, series []Series) {
	weeks = stats.AvailableWeeks(rows)
	if len(managers) == 0 {
		managers = stats.Managers(rows)
	}

	col := make(map[int]int, len(weeks))
	for i, w := range weeks {
		col[w] = i
	}
	index := make(map[string]int, len(managers))
	series = make([]Series, len(managers))
	for i, m := range managers {
		index[m] = i
		series[i] = Series{Manager: m, Values: make([]*float64, len(weeks))}
	}
	for _, r := range rows {
		si, ok := index[r.Manager]
		if !ok {
			continue
		}
		wi, ok := col[r.Week]
		if !ok {
			continue
		}
		if v, ok := r.Stat(cat.Name); ok {
			series[si].Values[wi] = &v
		}
	}
	return weeks, series
}

// NewScatter builds the chart: x is the week, y the category value, one
// series per manager.
func NewScatter(rows []provider.Record, cat league.Category, managers []string, config ChartConfig) *charts.Scatter {
	weeks, series := ScatterData(rows, cat, managers)

	title := config.Title
	if title == "" {
		title = cat.Name + " by week"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Week"}),
		charts.WithYAxisOpts(opts.YAxis{Name: cat.Name, Scale: opts.Bool(true)}),
	)

	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = fmt.Sprintf("Week %d", w)
	}
	scatter.SetXAxis(labels)

	for _, s := range series {
		data := make([]opts.ScatterData, len(s.Values))
		for i, v := range s.Values {
			if v == nil {
				data[i] = opts.ScatterData{Value: missing}
				continue
			}
			data[i] = opts.ScatterData{Value: *v, SymbolSize: 12}
		}
		scatter.AddSeries(s.Manager, data)
	}
	return scatter
}

// RenderScatter writes the chart as a standalone HTML page.
func RenderScatter(w io.Writer, rows []provider.Record, cat league.Category, managers []string, config ChartConfig) error {
	if err := NewScatter(rows, cat, managers, config).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
