package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

// SQLiteStore keeps the season table in a local SQLite file.
type SQLiteStore struct {
	path  string
	sqlDB *sql.DB
}

// OpenSQLite migrates the database at path and opens it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}
	if err := MigrateUp(config.StoreSQLite, cleanPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteStore{path: cleanPath, sqlDB: sqlDB}, nil
}

// Name identifies the store in logs.
func (s *SQLiteStore) Name() string {
	return "sqlite:" + s.path
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, records []provider.Record) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_weeks"); err != nil {
		return fmt.Errorf("clear team_weeks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO team_weeks
		(seq, manager, week, stats, games_completed, games_total) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		stats := r.Stats
		if stats == nil {
			stats = map[string]float64{}
		}
		encoded, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("encode stats for %s week %d: %w", r.Manager, r.Week, err)
		}
		if _, err := stmt.ExecContext(ctx, i+1, r.Manager, r.Week, string(encoded), r.Games.Completed, r.Games.Total); err != nil {
			return fmt.Errorf("insert %s week %d: %w", r.Manager, r.Week, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO table_saves (records, saved_at) VALUES (?, ?)",
		len(records), time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("record save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit table: %w", err)
	}
	return nil
}

// Load returns the rows in saved order.
func (s *SQLiteStore) Load(ctx context.Context) ([]provider.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT manager, week, stats, games_completed, games_total FROM team_weeks ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: query team_weeks: %v", table.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []provider.Record
	for rows.Next() {
		var r provider.Record
		var stats string
		if err := rows.Scan(&r.Manager, &r.Week, &stats, &r.Games.Completed, &r.Games.Total); err != nil {
			return nil, fmt.Errorf("%w: scan team_weeks: %v", table.ErrUnavailable, err)
		}
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("%w: decode stats for %s week %d: %v", table.ErrUnavailable, r.Manager, r.Week, err)
		}
		if r.Stats == nil {
			r.Stats = map[string]float64{}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", table.ErrUnavailable, err)
	}
	return records, nil
}

// SavedAt returns the time of the latest Save.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx, "SELECT saved_at FROM table_saves ORDER BY id DESC LIMIT 1").Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: no table saved", table.ErrUnavailable)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", table.ErrUnavailable, err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad saved_at %q", table.ErrUnavailable, raw)
	}
	return at, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
