package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "season.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	want := []provider.Record{
		{Manager: "Zed", Week: 2, Stats: map[string]float64{"PTS": 400, "FG%": 0.4812}, Games: provider.GamesPlayed{Completed: 20, Total: 24}},
		{Manager: "Amy", Week: 1, Stats: map[string]float64{}, Games: provider.GamesPlayed{Completed: 0, Total: 25}},
		{Manager: "Amy", Week: 2, Stats: nil, Games: provider.GamesPlayed{}},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, want[0], got[0], "saved order is kept")
	assert.Equal(t, want[1], got[1])
	assert.Equal(t, map[string]float64{}, got[2].Stats)
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := []provider.Record{
		{Manager: "A", Week: 1, Stats: map[string]float64{"PTS": 1}},
		{Manager: "B", Week: 1, Stats: map[string]float64{"PTS": 2}},
	}
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, first[1:]))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Manager)
}

func TestSQLiteStoreRejectsDuplicateTeamWeek(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Save(ctx, []provider.Record{{Manager: "A", Week: 1}}))

	err := s.Save(ctx, []provider.Record{{Manager: "C", Week: 3}, {Manager: "C", Week: 3}})
	require.Error(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed save leaves the previous table")
	assert.Equal(t, "A", got[0].Manager)
}

func TestSQLiteStoreSavedAt(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.SavedAt(ctx)
	assert.ErrorIs(t, err, table.ErrUnavailable)

	require.NoError(t, s.Save(ctx, nil))
	at, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, at.IsZero())

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMigratorVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	m, err := NewMigrator(config.StoreSQLite, path)
	require.NoError(t, err)
	defer m.Close()

	v, _, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "up is idempotent")
	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.False(t, dirty)
}

func TestNewMigratorUnknownDialect(t *testing.T) {
	_, err := NewMigrator(config.StoreFile, "x")
	assert.Error(t, err)
}

func TestPgxURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgxURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://h/db", pgxURL("postgresql://h/db"))
	assert.Equal(t, "pgx5://h/db", pgxURL("pgx5://h/db"))
}
