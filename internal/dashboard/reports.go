package dashboard

import (
	"errors"
	"fmt"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/stats"
	"github.com/jyoun110/FantasyComp/internal/view"
)

// ErrWeekNotAvailable means the requested week has not started or is not in
// the table.
var ErrWeekNotAvailable = errors.New("week not available")

// WeeksReport lists the selectable weeks.
type WeeksReport struct {
	Weeks       []int    `json:"weeks"`
	CurrentWeek *int     `json:"current_week"`
	Managers    []string `json:"managers"`
}

// BuildWeeks summarizes week availability and the manager list.
func BuildWeeks(records []provider.Record) WeeksReport {
	rep := WeeksReport{
		Weeks:    stats.AvailableWeeks(records),
		Managers: stats.Managers(records),
	}
	if rep.Weeks == nil {
		rep.Weeks = []int{}
	}
	if rep.Managers == nil {
		rep.Managers = []string{}
	}
	if cur, ok := stats.CurrentWeek(records); ok {
		rep.CurrentWeek = &cur
	}
	return rep
}

// WeekReport is the weekly comparison of one week.
type WeekReport struct {
	Week     int               `json:"week"`
	Managers []string          `json:"managers"`
	Rows     []provider.Record `json:"rows"`
	Leaders  map[string]string `json:"leaders"`
	Grid     view.Grid         `json:"grid"`
}

// ResolveWeek returns week when it is available, or the current week when
// week is zero.
func ResolveWeek(records []provider.Record, week int) (int, error) {
	if week == 0 {
		cur, ok := stats.CurrentWeek(records)
		if !ok {
			return 0, fmt.Errorf("%w: no week has started", ErrWeekNotAvailable)
		}
		return cur, nil
	}
	for _, w := range stats.AvailableWeeks(records) {
		if w == week {
			return week, nil
		}
	}
	return 0, fmt.Errorf("%w: week %d", ErrWeekNotAvailable, week)
}

// BuildWeek compares the managers of one week. An empty managers list
// means all managers.
func BuildWeek(records []provider.Record, week int, managers []string, cats league.Categories) (WeekReport, error) {
	week, err := ResolveWeek(records, week)
	if err != nil {
		return WeekReport{}, err
	}
	rows := stats.WeekRows(records, week, managers)
	leaders := make(map[string]string)
	for name, i := range stats.Leaders(rows, cats) {
		leaders[name] = rows[i].Manager
	}
	if managers == nil {
		managers = []string{}
	}
	if rows == nil {
		rows = []provider.Record{}
	}
	return WeekReport{
		Week:     week,
		Managers: managers,
		Rows:     rows,
		Leaders:  leaders,
		Grid:     view.WeeklyGrid(rows, cats),
	}, nil
}

// RanksReport is the rank matrix of one week.
type RanksReport struct {
	Week  int             `json:"week"`
	Ranks []stats.RankRow `json:"ranks"`
	Grid  view.Grid       `json:"grid"`
}

// BuildRanks ranks every team of a week. managers filters the rendered grid
// and the returned rows, not the ranking itself.
func BuildRanks(records []provider.Record, week int, managers []string, cats league.Categories) (RanksReport, error) {
	week, err := ResolveWeek(records, week)
	if err != nil {
		return RanksReport{}, err
	}
	all := stats.WeekRanks(records, week, cats)
	keep := make(map[string]bool, len(managers))
	for _, m := range managers {
		keep[m] = true
	}
	ranks := make([]stats.RankRow, 0, len(all))
	for _, r := range all {
		if len(keep) == 0 || keep[r.Manager] {
			ranks = append(ranks, r)
		}
	}
	return RanksReport{Week: week, Ranks: ranks, Grid: view.RanksGrid(all, cats, managers)}, nil
}

// AveragesReport holds the season averages over completed weeks.
type AveragesReport struct {
	CompletedWeeks []int           `json:"completed_weeks"`
	Averages       []stats.Average `json:"averages"`
	Grid           view.Grid       `json:"grid"`
}

// BuildAverages computes season averages.
func BuildAverages(records []provider.Record, cats league.Categories) AveragesReport {
	avgs := stats.SeasonAverages(records, cats)
	if avgs == nil {
		avgs = []stats.Average{}
	}
	weeks := stats.AvailableWeeks(records)
	if weeks == nil {
		weeks = []int{}
	}
	return AveragesReport{CompletedWeeks: weeks, Averages: avgs, Grid: view.AveragesGrid(avgs, cats)}
}

// ExtremeEntry is one category of the record book.
type ExtremeEntry struct {
	Category string        `json:"category"`
	High     stats.Extreme `json:"high"`
	Low      stats.Extreme `json:"low"`
	HighText string        `json:"high_text"`
	LowText  string        `json:"low_text"`
}

// HighsLowsReport is the season record book.
type HighsLowsReport struct {
	CurrentWeek   *int           `json:"current_week"`
	ExcludedWeeks []int          `json:"excluded_weeks"`
	Records       []ExtremeEntry `json:"records"`
	Grid          view.Grid      `json:"grid"`
}

// BuildHighsLows computes the record book, excluding the current week and
// the anomalous weeks.
func BuildHighsLows(records []provider.Record, cats league.Categories, anomalous league.WeekSet) HighsLowsReport {
	hl := stats.HighsLows(records, cats, anomalous)
	rep := HighsLowsReport{
		ExcludedWeeks: anomalous.Sorted(),
		Records:       make([]ExtremeEntry, 0, len(hl)),
		Grid:          view.HighsLowsGrid(hl),
	}
	if cur, ok := stats.CurrentWeek(records); ok {
		rep.CurrentWeek = &cur
	}
	for _, h := range hl {
		rep.Records = append(rep.Records, ExtremeEntry{
			Category: h.Category.Name,
			High:     h.High,
			Low:      h.Low,
			HighText: view.ExtremeText(h.Category, h.High),
			LowText:  view.ExtremeText(h.Category, h.Low),
		})
	}
	return rep
}
