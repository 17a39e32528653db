package view

import (
	"strconv"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/stats"
)

// Cell is one rendered value. Leader marks the category winner.
type Cell struct {
	Text   string `json:"text"`
	Leader bool   `json:"leader,omitempty"`
}

// Row is a labelled line of cells, one per non-label column.
type Row struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Grid is a rendered table. Columns includes the label column.
type Grid struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

func columns(first string, cats league.Categories, last ...string) []string {
	cols := append([]string{first}, cats.Names()...)
	return append(cols, last...)
}

// WeeklyGrid renders one week's rows with the winner of each category
// marked. Leaders are computed over the rows shown.
func WeeklyGrid(rows []provider.Record, cats league.Categories) Grid {
	g := Grid{Columns: columns("Manager", cats, "Games Played")}
	leaders := stats.Leaders(rows, cats)
	for i, r := range rows {
		row := Row{Label: r.Manager}
		for _, c := range cats.All() {
			v, ok := r.Stat(c.Name)
			lead, has := leaders[c.Name]
			row.Cells = append(row.Cells, Cell{Text: WeeklyValue(c, v, ok), Leader: has && lead == i})
		}
		row.Cells = append(row.Cells, Cell{Text: r.Games.String()})
		g.Rows = append(g.Rows, row)
	}
	return g
}

// AveragesGrid renders season averages with category leaders marked.
func AveragesGrid(avgs []stats.Average, cats league.Categories) Grid {
	g := Grid{Columns: columns("Manager", cats, "Average Games Played")}
	leaders := stats.AverageLeaders(avgs, cats)
	for i, a := range avgs {
		row := Row{Label: a.Manager}
		for _, c := range cats.All() {
			v, ok := a.Stats[c.Name]
			lead, has := leaders[c.Name]
			row.Cells = append(row.Cells, Cell{Text: AverageValue(c, v, ok), Leader: has && lead == i})
		}
		lead, has := leaders[stats.GamesPlayedKey]
		row.Cells = append(row.Cells, Cell{Text: FormatNumber(a.GamesPlayed, 1), Leader: has && lead == i})
		g.Rows = append(g.Rows, row)
	}
	return g
}

// RanksGrid renders a rank matrix. Rank 1 cells are marked as leaders and
// missing ranks show as "-". A non-empty managers list filters the rows.
func RanksGrid(ranks []stats.RankRow, cats league.Categories, managers []string) Grid {
	keep := make(map[string]bool, len(managers))
	for _, m := range managers {
		keep[m] = true
	}

	g := Grid{Columns: columns("Manager", cats)}
	for _, rr := range ranks {
		if len(keep) > 0 && !keep[rr.Manager] {
			continue
		}
		row := Row{Label: rr.Manager}
		for _, c := range cats.All() {
			rank, ok := rr.Ranks[c.Name]
			if !ok {
				row.Cells = append(row.Cells, Cell{Text: "-"})
				continue
			}
			row.Cells = append(row.Cells, Cell{Text: strconv.Itoa(rank), Leader: rank == 1})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// HighsLowsGrid renders the record book, one row per category.
func HighsLowsGrid(hl []stats.HighLow) Grid {
	g := Grid{Columns: []string{"Category", "Season High", "Season Low"}}
	for _, h := range hl {
		g.Rows = append(g.Rows, Row{
			Label: h.Category.Name,
			Cells: []Cell{
				{Text: ExtremeText(h.Category, h.High)},
				{Text: ExtremeText(h.Category, h.Low)},
			},
		})
	}
	return g
}
