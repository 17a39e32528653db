package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

var teamWeekColumns = []string{"seq", "manager", "week", "stats", "games_completed", "games_total"}

// PostgresStore keeps the season table in the team_weeks table.
type PostgresStore struct {
	pool *Pool
}

// NewPostgresStore returns a store over an open pool.
func NewPostgresStore(pool *Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Name identifies the store in logs.
func (s *PostgresStore) Name() string {
	return "postgres"
}

// Save replaces every row in one transaction: clear, bulk copy, then stamp
// table_saves.
func (s *PostgresStore) Save(ctx context.Context, records []provider.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "team_weeks_clear"); err != nil {
		return fmt.Errorf("clear team_weeks: %w", err)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		stats := r.Stats
		if stats == nil {
			stats = map[string]float64{}
		}
		rows[i] = []any{i + 1, r.Manager, r.Week, stats, r.Games.Completed, r.Games.Total}
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"team_weeks"}, teamWeekColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy team_weeks: %w", err)
	}
	if int(n) != len(records) {
		return fmt.Errorf("copy team_weeks: wrote %d of %d rows", n, len(records))
	}

	if _, err := tx.Exec(ctx, "table_saves_record", len(records)); err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return tx.Commit(ctx)
}

// Load returns the rows in saved order.
func (s *PostgresStore) Load(ctx context.Context) ([]provider.Record, error) {
	rows, err := s.pool.Query(ctx, "team_weeks_load")
	if err != nil {
		return nil, fmt.Errorf("%w: query team_weeks: %v", table.ErrUnavailable, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (provider.Record, error) {
		var r provider.Record
		err := row.Scan(&r.Manager, &r.Week, &r.Stats, &r.Games.Completed, &r.Games.Total)
		if r.Stats == nil {
			r.Stats = map[string]float64{}
		}
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan team_weeks: %v", table.ErrUnavailable, err)
	}
	return records, nil
}

// SavedAt returns the time of the latest Save.
func (s *PostgresStore) SavedAt(ctx context.Context) (time.Time, error) {
	var at time.Time
	err := s.pool.QueryRow(ctx, "table_saves_latest").Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: no table saved", table.ErrUnavailable)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", table.ErrUnavailable, err)
	}
	return at, nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
