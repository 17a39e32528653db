// Package provider defines the canonical team-week record that the extractor
// produces and every dashboard computation consumes.
//
// Provider-specific code (internal/provider/yahoo) normalizes upstream
// payloads into these types; stores persist them and the dashboard reads them
// back. Formatting for display lives in internal/view, not here.
package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// GamesPlayed is the completed/total games pair for one team-week.
type GamesPlayed struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// String renders the pair as "completed/total".
func (g GamesPlayed) String() string {
	return fmt.Sprintf("%d/%d", g.Completed, g.Total)
}

// Started reports whether at least one game has been completed.
func (g GamesPlayed) Started() bool {
	return g.Completed > 0
}

// ParseGamesPlayed parses a "completed/total" string. Both halves must be
// non-negative integers and completed must not exceed total.
func ParseGamesPlayed(s string) (GamesPlayed, error) {
	done, total, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return GamesPlayed{}, fmt.Errorf("games played %q: missing '/'", s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(done))
	if err != nil {
		return GamesPlayed{}, fmt.Errorf("games played %q: completed: %w", s, err)
	}
	t, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return GamesPlayed{}, fmt.Errorf("games played %q: total: %w", s, err)
	}
	if c < 0 || t < 0 || c > t {
		return GamesPlayed{}, fmt.Errorf("games played %q: out of range", s)
	}
	return GamesPlayed{Completed: c, Total: t}, nil
}

// Record is one team's line for one scoring week.
//
// Stats is keyed by category name. A category missing from the map means the
// upstream value was absent or not numeric.
type Record struct {
	Manager string             `json:"manager"`
	Week    int                `json:"week"`
	Stats   map[string]float64 `json:"stats"`
	Games   GamesPlayed        `json:"games_played"`
}

// Stat returns the value of a category and whether it is present.
func (r Record) Stat(name string) (float64, bool) {
	v, ok := r.Stats[name]
	return v, ok
}

// Completed reports whether the record counts toward completed weeks.
func (r Record) Completed() bool {
	return r.Games.Started()
}
