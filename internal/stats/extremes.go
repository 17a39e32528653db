package stats

import (
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// Extreme is one entry of the record book.
type Extreme struct {
	Value   float64 `json:"value"`
	Manager string  `json:"manager"`
	Week    int     `json:"week"`
}

// HighLow holds the season high and low of one category.
type HighLow struct {
	Category league.Category
	High     Extreme
	Low      Extreme
}

// EligibleRows returns the rows that count toward highs and lows: the week
// has started, is not the current week and is not anomalous.
func EligibleRows(rows []provider.Record, anomalous league.WeekSet) []provider.Record {
	current, ok := CurrentWeek(rows)
	if !ok {
		return nil
	}
	available := make(map[int]bool)
	for _, w := range AvailableWeeks(rows) {
		available[w] = true
	}

	var out []provider.Record
	for _, r := range rows {
		if !available[r.Week] || r.Week == current || anomalous.Has(r.Week) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// HighsLows finds, per category in table order, the highest and lowest value
// among the eligible rows. The first row in table order wins ties. A
// category with no present value is omitted.
func HighsLows(rows []provider.Record, cats league.Categories, anomalous league.WeekSet) []HighLow {
	eligible := EligibleRows(rows, anomalous)

	var out []HighLow
	for _, c := range cats.All() {
		value := func(i int) (float64, bool) { return eligible[i].Stat(c.Name) }
		hi, ok := extremeIndex(len(eligible), value, false)
		if !ok {
			continue
		}
		lo, _ := extremeIndex(len(eligible), value, true)
		out = append(out, HighLow{
			Category: c,
			High:     extremeAt(eligible[hi], c.Name),
			Low:      extremeAt(eligible[lo], c.Name),
		})
	}
	return out
}

func extremeAt(r provider.Record, name string) Extreme {
	v, _ := r.Stat(name)
	return Extreme{Value: v, Manager: r.Manager, Week: r.Week}
}

// extremeIndex returns the index of the first largest (or, with lowest,
// the first smallest) present value among n items.
func extremeIndex(n int, value func(int) (float64, bool), lowest bool) (int, bool) {
	best, found := -1, false
	var bestV float64
	for i := 0; i < n; i++ {
		v, ok := value(i)
		if !ok {
			continue
		}
		if !found || (lowest && v < bestV) || (!lowest && v > bestV) {
			best, bestV, found = i, v, true
		}
	}
	return best, found
}

// Leaders returns, per category name, the index of the winning row: the
// largest value, or the smallest for lower-is-better categories. Ties go to
// the first row. Categories with no values have no entry.
func Leaders(rows []provider.Record, cats league.Categories) map[string]int {
	out := make(map[string]int, cats.Len())
	for _, c := range cats.All() {
		value := func(i int) (float64, bool) { return rows[i].Stat(c.Name) }
		if i, ok := extremeIndex(len(rows), value, c.LowerIsBetter); ok {
			out[c.Name] = i
		}
	}
	return out
}

// AverageLeaders is Leaders over season averages. The games played column
// is led by the highest average under the "Games Played" key.
func AverageLeaders(avgs []Average, cats league.Categories) map[string]int {
	out := make(map[string]int, cats.Len()+1)
	for _, c := range cats.All() {
		value := func(i int) (float64, bool) {
			v, ok := avgs[i].Stats[c.Name]
			return v, ok
		}
		if i, ok := extremeIndex(len(avgs), value, c.LowerIsBetter); ok {
			out[c.Name] = i
		}
	}
	games := func(i int) (float64, bool) { return avgs[i].GamesPlayed, true }
	if i, ok := extremeIndex(len(avgs), games, false); ok {
		out[GamesPlayedKey] = i
	}
	return out
}

// GamesPlayedKey is the column name used for games played in leader maps.
const GamesPlayedKey = "Games Played"
