// Package stats derives the dashboard views from the season table: week
// availability, season averages, highs and lows, and weekly rankings.
// Every function is a pure projection over the rows it is given.
package stats

import (
	"sort"

	"github.com/jyoun110/FantasyComp/internal/provider"
)

// AvailableWeeks returns, ascending, the weeks where at least one manager has
// completed a game.
func AvailableWeeks(rows []provider.Record) []int {
	seen := make(map[int]bool)
	var weeks []int
	for _, r := range rows {
		if r.Completed() && !seen[r.Week] {
			seen[r.Week] = true
			weeks = append(weeks, r.Week)
		}
	}
	sort.Ints(weeks)
	return weeks
}

// CurrentWeek returns the latest available week. ok is false when no week
// has started.
func CurrentWeek(rows []provider.Record) (week int, ok bool) {
	for _, r := range rows {
		if r.Completed() && r.Week > week {
			week, ok = r.Week, true
		}
	}
	return week, ok
}

// CompletedRows returns the rows whose completed game count is positive.
func CompletedRows(rows []provider.Record) []provider.Record {
	out := make([]provider.Record, 0, len(rows))
	for _, r := range rows {
		if r.Completed() {
			out = append(out, r)
		}
	}
	return out
}

// Managers returns the distinct managers in first-appearance order.
func Managers(rows []provider.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if !seen[r.Manager] {
			seen[r.Manager] = true
			out = append(out, r.Manager)
		}
	}
	return out
}

// WeekRows returns the rows of one week, keeping table order. A non-empty
// managers list restricts the result to those managers.
func WeekRows(rows []provider.Record, week int, managers []string) []provider.Record {
	var keep map[string]bool
	if len(managers) > 0 {
		keep = make(map[string]bool, len(managers))
		for _, m := range managers {
			keep[m] = true
		}
	}

	var out []provider.Record
	for _, r := range rows {
		if r.Week != week {
			continue
		}
		if keep != nil && !keep[r.Manager] {
			continue
		}
		out = append(out, r)
	}
	return out
}
