package yahoo

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// Paths into the scoreboard payload. Yahoo encodes collections as objects
// keyed "0".."n" plus a "count" member, and a team as a two element array
// of [metadata fragments, stats].
const (
	matchupsPath  = "fantasy_content.league.1.scoreboard.0.matchups"
	teamsPath     = "0.teams"
	teamNamePath  = "0.2.name"
	teamStatsPath = "1.team_stats.stats"
	gamesPath     = "1.team_remaining_games.total"
)

// Skip describes one matchup or team fragment that was not turned into a
// record. Team is empty when the whole matchup was skipped.
type Skip struct {
	Week    int
	Matchup string
	Team    string
	Reason  error
}

func (s Skip) Error() string {
	if s.Team != "" {
		return fmt.Sprintf("week %d matchup %s team %s: %v", s.Week, s.Matchup, s.Team, s.Reason)
	}
	if s.Matchup != "" {
		return fmt.Sprintf("week %d matchup %s: %v", s.Week, s.Matchup, s.Reason)
	}
	return fmt.Sprintf("week %d: %v", s.Week, s.Reason)
}

func (s Skip) Unwrap() error {
	return s.Reason
}

// NormalizeResult holds the records of one week and what was skipped.
type NormalizeResult struct {
	Records []provider.Record
	Skips   []Skip
}

// Normalize converts one week's raw scoreboard into team-week records.
//
// Malformed fragments are skipped, never fatal: a bad matchup skips its
// teams, a bad team skips only itself. Records keep upstream order
// (matchup order, then team order). Only stat IDs present in cats are kept.
func Normalize(week int, raw []byte, cats league.Categories) NormalizeResult {
	var res NormalizeResult

	matchups := gjson.GetBytes(raw, matchupsPath)
	if !matchups.IsObject() {
		res.Skips = append(res.Skips, Skip{Week: week, Reason: ErrNoMatchups})
		return res
	}

	seen := make(map[string]bool)
	matchups.ForEach(func(key, entry gjson.Result) bool {
		mk := key.String()
		if mk == "count" {
			return true
		}
		teams, err := matchupTeams(entry)
		if err != nil {
			res.Skips = append(res.Skips, Skip{Week: week, Matchup: mk, Reason: err})
			return true
		}

		teams.ForEach(func(tkey, teamEntry gjson.Result) bool {
			tk := tkey.String()
			if tk == "count" {
				return true
			}
			rec, err := parseTeam(week, teamEntry, cats)
			if err == nil && seen[rec.Manager] {
				err = ErrDuplicateManager
			}
			if err != nil {
				res.Skips = append(res.Skips, Skip{Week: week, Matchup: mk, Team: tk, Reason: err})
				return true
			}
			seen[rec.Manager] = true
			res.Records = append(res.Records, rec)
			return true
		})
		return true
	})

	return res
}

// matchupTeams validates a matchup entry and returns its teams object.
func matchupTeams(entry gjson.Result) (gjson.Result, error) {
	if !entry.IsObject() {
		return gjson.Result{}, ErrNotObject
	}
	matchup := entry.Get("matchup")
	if !matchup.IsObject() {
		return gjson.Result{}, ErrMissingMatchup
	}
	teams := matchup.Get(teamsPath)
	if !teams.IsObject() {
		return gjson.Result{}, ErrMissingTeams
	}
	return teams, nil
}

// parseTeam validates one team entry and builds its record.
func parseTeam(week int, entry gjson.Result, cats league.Categories) (provider.Record, error) {
	if !entry.IsObject() {
		return provider.Record{}, ErrMissingTeam
	}
	team := entry.Get("team")
	if !team.Exists() {
		return provider.Record{}, ErrMissingTeam
	}
	if !team.IsArray() || len(team.Array()) < 2 {
		return provider.Record{}, ErrTeamShape
	}

	name := team.Get(teamNamePath)
	if name.Type != gjson.String || name.String() == "" {
		return provider.Record{}, ErrMissingName
	}

	rec := provider.Record{
		Manager: name.String(),
		Week:    week,
		Stats:   make(map[string]float64, cats.Len()),
	}

	team.Get(teamStatsPath).ForEach(func(_, s gjson.Result) bool {
		cat, ok := cats.ByID(s.Get("stat.stat_id").String())
		if !ok {
			return true
		}
		if v, ok := provider.ExtractValue(s.Get("stat.value").Value()); ok {
			rec.Stats[cat.Name] = v
		}
		return true
	})

	games := team.Get(gamesPath)
	completed := nonNegative(games.Get("completed_games").Int())
	remaining := nonNegative(games.Get("remaining_games").Int())
	rec.Games = provider.GamesPlayed{Completed: completed, Total: completed + remaining}

	return rec, nil
}

func nonNegative(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
