// Package league describes the fixed shape of the fantasy league: its scoring
// categories and season calendar. Values here are immutable and are passed
// explicitly to the extractor and the dashboard computations.
package league

import "sort"

// Kind distinguishes fractional percentage categories from counting stats.
type Kind int

const (
	Count Kind = iota
	Percentage
)

// Category is one head-to-head scoring category.
type Category struct {
	ID            string // Yahoo stat_id
	Name          string // column name in the persisted table
	Kind          Kind
	LowerIsBetter bool

	// Display precision for season averages and the weekly table.
	AverageDecimals int
	WeeklyDecimals  int
}

// IsPercentage reports whether the category is a fraction in [0,1].
func (c Category) IsPercentage() bool {
	return c.Kind == Percentage
}

// Categories is an ordered, read-only category table keyed by stat ID.
// The zero value is an empty table.
type Categories struct {
	list   []Category
	byID   map[string]int
	byName map[string]int
}

// NewCategories builds a table preserving the given order. Later duplicates
// of an ID or name are ignored.
func NewCategories(cats ...Category) Categories {
	t := Categories{
		list:   make([]Category, 0, len(cats)),
		byID:   make(map[string]int, len(cats)),
		byName: make(map[string]int, len(cats)),
	}
	for _, c := range cats {
		if _, dup := t.byID[c.ID]; dup {
			continue
		}
		if _, dup := t.byName[c.Name]; dup {
			continue
		}
		t.byID[c.ID] = len(t.list)
		t.byName[c.Name] = len(t.list)
		t.list = append(t.list, c)
	}
	return t
}

// DefaultCategories returns the 9-cat NBA table used by the league.
func DefaultCategories() Categories {
	pct := func(id, name string) Category {
		return Category{ID: id, Name: name, Kind: Percentage, AverageDecimals: 3, WeeklyDecimals: 3}
	}
	cnt := func(id, name string) Category {
		return Category{ID: id, Name: name, Kind: Count, AverageDecimals: 1, WeeklyDecimals: 0}
	}
	to := cnt("19", "TO")
	to.LowerIsBetter = true

	return NewCategories(
		pct("5", "FG%"),
		pct("8", "FT%"),
		cnt("10", "3PM"),
		cnt("12", "PTS"),
		cnt("15", "REB"),
		cnt("16", "AST"),
		cnt("17", "STL"),
		cnt("18", "BLK"),
		to,
	)
}

// ByID looks up a category by its upstream stat ID.
func (t Categories) ByID(id string) (Category, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Category{}, false
	}
	return t.list[i], true
}

// ByName looks up a category by its column name.
func (t Categories) ByName(name string) (Category, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Category{}, false
	}
	return t.list[i], true
}

// All returns the categories in table order. The slice is a copy.
func (t Categories) All() []Category {
	out := make([]Category, len(t.list))
	copy(out, t.list)
	return out
}

// Names returns the column names in table order.
func (t Categories) Names() []string {
	out := make([]string, len(t.list))
	for i, c := range t.list {
		out[i] = c.Name
	}
	return out
}

// Len returns the number of categories.
func (t Categories) Len() int {
	return len(t.list)
}

// --------------------------------------------------------------------------
// Season calendar
// --------------------------------------------------------------------------

// DefaultSeasonWeeks is the number of scoring weeks in the regular season.
const DefaultSeasonWeeks = 23

// DefaultAnomalousWeeks are excluded from the record book: the short opening
// week, the in-season tournament week and the All-Star break.
var DefaultAnomalousWeeks = []int{1, 7, 16}

// WeekSet is a set of week numbers.
type WeekSet map[int]struct{}

// NewWeekSet builds a set from a list of weeks.
func NewWeekSet(weeks ...int) WeekSet {
	s := make(WeekSet, len(weeks))
	for _, w := range weeks {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether week is in the set. A nil set is empty.
func (s WeekSet) Has(week int) bool {
	_, ok := s[week]
	return ok
}

// Sorted returns the weeks in ascending order.
func (s WeekSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}
