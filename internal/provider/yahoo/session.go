package yahoo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"
)

// LeagueKeys returns the league keys of the logged-in user for a game code
// ("nba"), in the order Yahoo lists them (oldest season first).
func (c *Client) LeagueKeys(ctx context.Context, gameCode string) ([]string, error) {
	path := fmt.Sprintf("/users;use_login=1/games;game_codes=%s/leagues", gameCode)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var keys []string
	games := gjson.GetBytes(body, "fantasy_content.users.0.user.1.games")
	games.ForEach(func(_, game gjson.Result) bool {
		if !game.IsObject() {
			return true
		}
		game.Get("game.1.leagues").ForEach(func(_, lg gjson.Result) bool {
			if key := lg.Get("league.0.league_key"); key.Type == gjson.String && key.String() != "" {
				keys = append(keys, key.String())
			}
			return true
		})
		return true
	})
	return keys, nil
}

// Scoreboard returns the raw scoreboard JSON of one league week.
func (c *Client) Scoreboard(ctx context.Context, leagueKey string, week int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/league/%s/scoreboard;week=%d", leagueKey, week))
}

// Session is an authenticated client bound to one league. The league is
// resolved once when the session is opened.
type Session struct {
	client    *Client
	leagueKey string
}

// OpenSession validates the token and resolves the league. When leagueKey is
// empty the most recent league of gameCode is used.
func OpenSession(ctx context.Context, client *Client, gameCode, leagueKey string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := client.Validate(ctx); err != nil {
		return nil, err
	}

	if leagueKey == "" {
		keys, err := client.LeagueKeys(ctx, gameCode)
		if err != nil {
			return nil, fmt.Errorf("list leagues: %w", err)
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoLeague, gameCode)
		}
		leagueKey = keys[len(keys)-1]
		logger.Info("Resolved league", "game", gameCode, "league_key", leagueKey, "leagues_seen", len(keys))
	}

	return &Session{client: client, leagueKey: leagueKey}, nil
}

// LeagueKey returns the league this session fetches.
func (s *Session) LeagueKey() string {
	return s.leagueKey
}

// FetchWeek returns the raw scoreboard tree for one week.
func (s *Session) FetchWeek(ctx context.Context, week int) ([]byte, error) {
	return s.client.Scoreboard(ctx, s.leagueKey, week)
}
