package yahoo

import "errors"

// Fatal error classes surfaced by the client. Callers compare with errors.Is.
var (
	// ErrAuth means the access token could not be refreshed or the API
	// rejected it. Never retried.
	ErrAuth = errors.New("yahoo authentication failed")

	// ErrTransient marks network failures, throttling and 5xx responses.
	ErrTransient = errors.New("yahoo request failed (transient)")

	// ErrNoLeague means the account has no league for the game code.
	ErrNoLeague = errors.New("no league found for game")
)

// Skip reasons reported by Normalize. A skip never aborts a week.
var (
	ErrNoMatchups       = errors.New("scoreboard has no matchups")
	ErrNotObject        = errors.New("matchup entry is not an object")
	ErrMissingMatchup   = errors.New("matchup entry has no matchup")
	ErrMissingTeams     = errors.New("matchup has no teams object")
	ErrMissingTeam      = errors.New("team entry has no team")
	ErrTeamShape        = errors.New("team is not a 2+ element array")
	ErrMissingName      = errors.New("team metadata has no name")
	ErrDuplicateManager = errors.New("manager already recorded for week")
)

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient) && !errors.Is(err, ErrAuth)
}
