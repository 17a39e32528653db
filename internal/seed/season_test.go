package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/provider/yahoo"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// weekJSON builds a one-matchup scoreboard for two managers.
func weekJSON(a, b string, pts int) []byte {
	teamJSON := func(name string) string {
		return fmt.Sprintf(`{"team":[[{"team_key":"k"},{"team_id":"1"},{"name":%q}],{"team_stats":{"stats":[`+
			`{"stat":{"stat_id":"12","value":"%d"}},{"stat":{"stat_id":"19","value":"9"}}]},`+
			`"team_remaining_games":{"total":{"completed_games":3,"remaining_games":1}}}]}`, name, pts)
	}
	return []byte(fmt.Sprintf(`{"fantasy_content":{"league":[{},{"scoreboard":{"0":{"matchups":{`+
		`"0":{"matchup":{"0":{"teams":{"0":%s,"1":%s,"count":2}}}},"count":1}}}}]}}`, teamJSON(a), teamJSON(b)))
}

var emptyWeek = []byte(`{"fantasy_content":{"league":[{},{"scoreboard":{"0":{"matchups":{"count":0}}}}]}}`)

type fakeFetcher struct {
	mu       sync.Mutex
	weeks    map[int][]byte
	failures map[int][]error // consumed one per call before the payload is returned
	calls    []int
}

func (f *fakeFetcher) FetchWeek(ctx context.Context, week int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, week)
	if errs := f.failures[week]; len(errs) > 0 {
		f.failures[week] = errs[1:]
		return nil, errs[0]
	}
	if raw, ok := f.weeks[week]; ok {
		return raw, nil
	}
	return emptyWeek, nil
}

type memStore struct {
	saved   []provider.Record
	saves   int
	saveErr error
}

func (m *memStore) Name() string { return "memory" }
func (m *memStore) Save(_ context.Context, records []provider.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = records
	return nil
}
func (m *memStore) Load(context.Context) ([]provider.Record, error) { return m.saved, nil }
func (m *memStore) SavedAt(context.Context) (time.Time, error)      { return time.Time{}, nil }
func (m *memStore) Close() error                                    { return nil }

func testOptions(weeks int) Options {
	return Options{
		Weeks:       weeks,
		Categories:  league.DefaultCategories(),
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
	}
}

func transient(msg string) error {
	return fmt.Errorf("%w: %s", yahoo.ErrTransient, msg)
}

func TestBuildSeasonOrdersWeeks(t *testing.T) {
	f := &fakeFetcher{weeks: map[int][]byte{
		1: weekJSON("Alpha", "Bravo", 100),
		3: weekJSON("Bravo", "Alpha", 120),
	}}

	records, result, err := BuildSeason(context.Background(), f, testOptions(4), quiet)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, f.calls)
	require.Len(t, records, 4)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = fmt.Sprintf("%d:%s", r.Week, r.Manager)
	}
	assert.Equal(t, []string{"1:Alpha", "1:Bravo", "3:Bravo", "3:Alpha"}, got)
	assert.Equal(t, 120.0, records[2].Stats["PTS"])
	assert.Equal(t, provider.GamesPlayed{Completed: 3, Total: 4}, records[2].Games)

	assert.Equal(t, 4, result.WeeksFetched)
	assert.Equal(t, 2, result.WeeksWithData)
	assert.Equal(t, 4, result.RecordsBuilt)
	assert.Equal(t, 0, result.Retries)
	assert.Equal(t, 0, result.Skipped())
}

func TestBuildSeasonRetriesTransientErrors(t *testing.T) {
	f := &fakeFetcher{
		weeks:    map[int][]byte{2: weekJSON("Alpha", "Bravo", 90)},
		failures: map[int][]error{2: {transient("502"), transient("timeout")}},
	}

	records, result, err := BuildSeason(context.Background(), f, testOptions(2), quiet)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, result.Retries)
	assert.Equal(t, []int{1, 2, 2, 2}, f.calls)
}

func TestBuildSeasonGivesUpAfterMaxAttempts(t *testing.T) {
	f := &fakeFetcher{
		weeks:    map[int][]byte{1: weekJSON("Alpha", "Bravo", 90)},
		failures: map[int][]error{2: {transient("a"), transient("b"), transient("c"), transient("d")}},
	}
	store := &memStore{}

	result, err := Run(context.Background(), f, store, testOptions(3), quiet)
	require.Error(t, err)
	assert.True(t, yahoo.IsTransient(err))
	assert.ErrorContains(t, err, "week 2")
	assert.Equal(t, []int{1, 2, 2, 2}, f.calls, "week 3 is never requested")
	assert.Equal(t, 0, store.saves, "a failed build writes nothing")
	assert.Equal(t, 1, result.WeeksFetched)
}

func TestBuildSeasonNeverRetriesAuth(t *testing.T) {
	authErr := fmt.Errorf("%w: token revoked", yahoo.ErrAuth)
	f := &fakeFetcher{failures: map[int][]error{1: {authErr}}}

	_, _, err := BuildSeason(context.Background(), f, testOptions(5), quiet)
	assert.ErrorIs(t, err, yahoo.ErrAuth)
	assert.Equal(t, []int{1}, f.calls)
}

func TestBuildWeekStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakeFetcher{failures: map[int][]error{1: {transient("x"), transient("y")}}}
	opts := testOptions(1)
	opts.Backoff = time.Hour

	_, _, err := BuildWeek(ctx, f, 1, opts, quiet)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1}, f.calls)
}

func TestRunSavesAndCountsSkips(t *testing.T) {
	broken := []byte(`{"fantasy_content":{"league":[{},{"scoreboard":{"0":{"matchups":{` +
		`"0":"junk","1":{"other":1},"count":2}}}}]}}`)
	f := &fakeFetcher{weeks: map[int][]byte{
		1: weekJSON("Alpha", "Bravo", 100),
		2: broken,
	}}
	store := &memStore{}

	result, err := Run(context.Background(), f, store, testOptions(2), quiet)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Len(t, store.saved, 2)
	assert.Equal(t, 2, result.Skipped())
	assert.Equal(t, 1, result.SkippedByCause[yahoo.ErrNotObject.Error()])
	assert.Equal(t, 1, result.SkippedByCause[yahoo.ErrMissingMatchup.Error()])
	assert.Contains(t, result.Summary(), "weeks=2 weeks_with_data=1 records=2 skipped=2 retries=0")
}

func TestRunReportsSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	_, err := Run(context.Background(), &fakeFetcher{}, store, testOptions(1), quiet)
	assert.ErrorContains(t, err, "save table: disk full")
}
