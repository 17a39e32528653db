package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

func row(manager string, week, completed int, pts, tov float64) provider.Record {
	return provider.Record{
		Manager: manager,
		Week:    week,
		Stats:   map[string]float64{"PTS": pts, "TO": tov, "FG%": 0.5},
		Games:   provider.GamesPlayed{Completed: completed, Total: 30},
	}
}

func season() []provider.Record {
	return []provider.Record{
		row("Alpha", 1, 20, 400, 30), row("Bravo", 1, 22, 500, 40),
		row("Alpha", 2, 25, 600, 20), row("Bravo", 2, 24, 550, 45),
		row("Alpha", 3, 26, 620, 25), row("Bravo", 3, 26, 520, 35),
		row("Alpha", 4, 3, 80, 5), row("Bravo", 4, 0, 0, 0),
		row("Alpha", 5, 0, 0, 0), row("Bravo", 5, 0, 0, 0),
	}
}

func TestBuildWeeks(t *testing.T) {
	rep := BuildWeeks(season())
	assert.Equal(t, []int{1, 2, 3, 4}, rep.Weeks)
	require.NotNil(t, rep.CurrentWeek)
	assert.Equal(t, 4, *rep.CurrentWeek)
	assert.Equal(t, []string{"Alpha", "Bravo"}, rep.Managers)

	empty := BuildWeeks(nil)
	assert.Empty(t, empty.Weeks)
	assert.NotNil(t, empty.Weeks)
	assert.Nil(t, empty.CurrentWeek)
}

func TestResolveWeek(t *testing.T) {
	w, err := ResolveWeek(season(), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, w)

	w, err = ResolveWeek(season(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, w)

	_, err = ResolveWeek(season(), 5)
	assert.ErrorIs(t, err, ErrWeekNotAvailable)
	_, err = ResolveWeek(nil, 0)
	assert.ErrorIs(t, err, ErrWeekNotAvailable)
}

func TestBuildWeekLeaders(t *testing.T) {
	cats := league.DefaultCategories()
	rep, err := BuildWeek(season(), 2, nil, cats)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Week)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Alpha", rep.Leaders["PTS"])
	assert.Equal(t, "Alpha", rep.Leaders["TO"], "fewest turnovers leads")
	assert.Len(t, rep.Grid.Rows, 2)

	solo, err := BuildWeek(season(), 2, []string{"Bravo"}, cats)
	require.NoError(t, err)
	require.Len(t, solo.Rows, 1)
	assert.Equal(t, "Bravo", solo.Leaders["PTS"])

	none, err := BuildWeek(season(), 2, []string{"Nobody"}, cats)
	require.NoError(t, err)
	assert.Empty(t, none.Rows)
	assert.True(t, none.Grid.Empty())
}

func TestBuildRanksFiltersAfterRanking(t *testing.T) {
	cats := league.DefaultCategories()
	rep, err := BuildRanks(season(), 3, []string{"Bravo"}, cats)
	require.NoError(t, err)
	require.Len(t, rep.Ranks, 1)
	assert.Equal(t, "Bravo", rep.Ranks[0].Manager)
	assert.Equal(t, 2, rep.Ranks[0].Ranks["PTS"], "rank is computed against the whole league")
	assert.Equal(t, 2, rep.Ranks[0].Ranks["TO"])

	_, err = BuildRanks(season(), 9, nil, cats)
	assert.ErrorIs(t, err, ErrWeekNotAvailable)
}

func TestBuildAverages(t *testing.T) {
	rep := BuildAverages(season(), league.DefaultCategories())
	require.Len(t, rep.Averages, 2)
	assert.Equal(t, "Alpha", rep.Averages[0].Manager)
	assert.Equal(t, 4, rep.Averages[0].Weeks)
	assert.Equal(t, 3, rep.Averages[1].Weeks, "unstarted week is not averaged")

	empty := BuildAverages(nil, league.DefaultCategories())
	assert.NotNil(t, empty.Averages)
	assert.True(t, empty.Grid.Empty())
}

func TestBuildHighsLowsExcludesCurrentAndAnomalous(t *testing.T) {
	rep := BuildHighsLows(season(), league.DefaultCategories(), league.NewWeekSet(1))
	require.NotNil(t, rep.CurrentWeek)
	assert.Equal(t, 4, *rep.CurrentWeek)
	assert.Equal(t, []int{1}, rep.ExcludedWeeks)

	var pts *ExtremeEntry
	for i := range rep.Records {
		if rep.Records[i].Category == "PTS" {
			pts = &rep.Records[i]
		}
	}
	require.NotNil(t, pts)
	assert.Equal(t, "Alpha", pts.High.Manager)
	assert.Equal(t, 3, pts.High.Week)
	assert.Equal(t, "Bravo", pts.Low.Manager)
	assert.Equal(t, 3, pts.Low.Week)
	assert.Equal(t, "620 - Alpha - Week 3", pts.HighText)
	assert.Equal(t, "520 - Bravo - Week 3", pts.LowText)
}
