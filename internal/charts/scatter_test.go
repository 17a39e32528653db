package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

func chartRows() []provider.Record {
	gp := provider.GamesPlayed{Completed: 3, Total: 10}
	return []provider.Record{
		{Manager: "Alpha", Week: 1, Stats: map[string]float64{"PTS": 500}, Games: gp},
		{Manager: "Bravo", Week: 1, Stats: map[string]float64{"PTS": 450}, Games: gp},
		{Manager: "Alpha", Week: 2, Stats: map[string]float64{}, Games: gp},
		{Manager: "Bravo", Week: 2, Stats: map[string]float64{"PTS": 470}, Games: gp},
		{Manager: "Alpha", Week: 3, Stats: map[string]float64{"PTS": 0}},
	}
}

func TestScatterData(t *testing.T) {
	pts, _ := league.DefaultCategories().ByName("PTS")

	weeks, series := ScatterData(chartRows(), pts, nil)
	assert.Equal(t, []int{1, 2}, weeks, "unstarted week 3 is not plotted")
	require.Len(t, series, 2)

	assert.Equal(t, "Alpha", series[0].Manager)
	require.NotNil(t, series[0].Values[0])
	assert.Equal(t, 500.0, *series[0].Values[0])
	assert.Nil(t, series[0].Values[1], "missing value is a gap")

	_, only := ScatterData(chartRows(), pts, []string{"Bravo"})
	require.Len(t, only, 1)
	assert.Equal(t, "Bravo", only[0].Manager)
	assert.Equal(t, 470.0, *only[0].Values[1])
}

func TestRenderScatter(t *testing.T) {
	pts, _ := league.DefaultCategories().ByName("PTS")
	var buf bytes.Buffer
	require.NoError(t, RenderScatter(&buf, chartRows(), pts, nil, DefaultChartConfig()))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "PTS by week")
	assert.Contains(t, html, "Alpha")
	assert.Contains(t, html, "Week 2")
}

func TestRenderScatterEmptyTable(t *testing.T) {
	pts, _ := league.DefaultCategories().ByName("PTS")
	var buf bytes.Buffer
	require.NoError(t, RenderScatter(&buf, nil, pts, nil, DefaultChartConfig()))
	assert.Contains(t, buf.String(), "<html")
}
