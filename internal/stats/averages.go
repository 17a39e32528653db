package stats

import (
	"math"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// Average is one manager's season line over completed weeks.
type Average struct {
	Manager     string             `json:"manager"`
	Weeks       int                `json:"weeks"`
	Stats       map[string]float64 `json:"stats"`
	GamesPlayed float64            `json:"games_played"`
}

// SeasonAverages averages each manager's completed rows, in first-appearance
// order. A category mean skips rows where the value is missing; a category
// with no values is left out of Stats. Stat means are rounded to 3 decimals
// and games played to 1.
func SeasonAverages(rows []provider.Record, cats league.Categories) []Average {
	type acc struct {
		rows   int
		games  int
		sums   map[string]float64
		counts map[string]int
	}

	var order []string
	groups := make(map[string]*acc)
	for _, r := range CompletedRows(rows) {
		g, ok := groups[r.Manager]
		if !ok {
			g = &acc{sums: make(map[string]float64), counts: make(map[string]int)}
			groups[r.Manager] = g
			order = append(order, r.Manager)
		}
		g.rows++
		g.games += r.Games.Completed
		for _, c := range cats.All() {
			if v, ok := r.Stat(c.Name); ok {
				g.sums[c.Name] += v
				g.counts[c.Name]++
			}
		}
	}

	out := make([]Average, 0, len(order))
	for _, m := range order {
		g := groups[m]
		avg := Average{
			Manager:     m,
			Weeks:       g.rows,
			Stats:       make(map[string]float64, len(g.sums)),
			GamesPlayed: Round(float64(g.games)/float64(g.rows), 1),
		}
		for name, sum := range g.sums {
			avg.Stats[name] = Round(sum/float64(g.counts[name]), 3)
		}
		out = append(out, avg)
	}
	return out
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
