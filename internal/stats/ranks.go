package stats

import (
	"sort"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// RankRow is one manager's dense rank per category for a week. A category
// with a missing value has no entry.
type RankRow struct {
	Manager string         `json:"manager"`
	Ranks   map[string]int `json:"ranks"`
}

// WeekRanks ranks every team of one week per category, in table order.
// Lower-is-better categories rank ascending, the rest descending.
func WeekRanks(rows []provider.Record, week int, cats league.Categories) []RankRow {
	weekRows := WeekRows(rows, week, nil)
	out := make([]RankRow, len(weekRows))
	for i, r := range weekRows {
		out[i] = RankRow{Manager: r.Manager, Ranks: make(map[string]int, cats.Len())}
	}

	values := make([]float64, len(weekRows))
	present := make([]bool, len(weekRows))
	for _, c := range cats.All() {
		for i, r := range weekRows {
			values[i], present[i] = r.Stat(c.Name)
		}
		for i, rank := range DenseRank(values, present, c.LowerIsBetter) {
			if rank > 0 {
				out[i].Ranks[c.Name] = rank
			}
		}
	}
	return out
}

// DenseRank ranks values so that ties share a rank and the next distinct
// value takes the following rank. ascending ranks the smallest value 1.
// Entries where present is false get rank 0.
func DenseRank(values []float64, present []bool, ascending bool) []int {
	var distinct []float64
	seen := make(map[float64]bool)
	for i, v := range values {
		if present[i] && !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	if ascending {
		sort.Float64s(distinct)
	} else {
		sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))
	}

	rankOf := make(map[float64]int, len(distinct))
	for i, v := range distinct {
		rankOf[v] = i + 1
	}

	ranks := make([]int, len(values))
	for i, v := range values {
		if present[i] {
			ranks[i] = rankOf[v]
		}
	}
	return ranks
}
