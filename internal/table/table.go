// Package table persists the season table. The file store writes the
// tabular file the dashboard reads; database stores live in internal/db and
// implement the same Store interface.
package table

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// ErrUnavailable wraps every load failure caused by a missing or corrupt
// table. The dashboard treats it as an empty state, not a crash.
var ErrUnavailable = errors.New("season table unavailable")

// Store persists a whole season table. Save replaces the previous table
// atomically; Load returns rows in the order they were saved. SavedAt
// reports when the current table was written and wraps ErrUnavailable
// when nothing has been saved yet.
type Store interface {
	Name() string
	Save(ctx context.Context, records []provider.Record) error
	Load(ctx context.Context) ([]provider.Record, error)
	SavedAt(ctx context.Context) (time.Time, error)
	Close() error
}

// Column names outside the category columns.
const (
	ColManager     = "Manager"
	ColWeek        = "Week"
	ColGamesPlayed = "Games Played"
)

// Header returns the column layout: Manager, Week, categories, Games Played.
func Header(cats league.Categories) []string {
	h := make([]string, 0, cats.Len()+3)
	h = append(h, ColManager, ColWeek)
	h = append(h, cats.Names()...)
	return append(h, ColGamesPlayed)
}

// FormatValue renders a stored numeric value without losing precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeRow renders one record in Header order. Missing stats are empty.
func EncodeRow(r provider.Record, cats league.Categories) []string {
	row := make([]string, 0, cats.Len()+3)
	row = append(row, r.Manager, strconv.Itoa(r.Week))
	for _, c := range cats.All() {
		if v, ok := r.Stat(c.Name); ok {
			row = append(row, FormatValue(v))
		} else {
			row = append(row, "")
		}
	}
	return append(row, r.Games.String())
}

// DecodeRows parses a header row followed by data rows. Columns are matched
// by name so reordered or extra columns are tolerated; a missing category
// column leaves that category absent. Manager, Week and Games Played are
// required.
func DecodeRows(rows [][]string, cats league.Categories) ([]provider.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrUnavailable)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColManager, ColWeek, ColGamesPlayed} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrUnavailable, required)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]provider.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		manager := cell(row, ColManager)
		if manager == "" && isBlank(row) {
			continue
		}
		if manager == "" {
			return nil, fmt.Errorf("%w: row %d: empty manager", ErrUnavailable, line)
		}
		week, err := parseWeek(cell(row, ColWeek))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad week %q", ErrUnavailable, line, cell(row, ColWeek))
		}
		games, err := provider.ParseGamesPlayed(cell(row, ColGamesPlayed))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrUnavailable, line, err)
		}

		rec := provider.Record{
			Manager: manager,
			Week:    week,
			Stats:   make(map[string]float64, cats.Len()),
			Games:   games,
		}
		for _, c := range cats.All() {
			if v, ok := provider.ExtractValue(cell(row, c.Name)); ok {
				rec.Stats[c.Name] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseWeek accepts "5" and the "5.0" form spreadsheet tools sometimes
// store for whole numbers.
func parseWeek(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 1 || f != math.Trunc(f) {
		return 0, fmt.Errorf("week %q is not a positive integer", s)
	}
	return int(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
