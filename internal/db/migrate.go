package db

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jyoun110/FantasyComp/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations of one dialect.
type Migrator struct {
	migrate *migrate.Migrate
}

// NewMigrator opens a migrator. dialect is config.StorePostgres or
// config.StoreSQLite; target is the Postgres URL or the SQLite file path.
func NewMigrator(dialect, target string) (*Migrator, error) {
	var dir, databaseURL string
	switch dialect {
	case config.StorePostgres:
		dir = "migrations/postgres"
		databaseURL = pgxURL(target)
	case config.StoreSQLite:
		dir = "migrations/sqlite"
		databaseURL = sqliteURL(target)
	default:
		return nil, fmt.Errorf("no migrations for store %q", dialect)
	}

	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("access migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{migrate: m}, nil
}

// Up applies all pending migrations.
func (mm *Migrator) Up() error {
	if err := mm.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back every migration.
func (mm *Migrator) Down() error {
	if err := mm.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version. Zero means no migration has
// run.
func (mm *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mm.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the source and database handles.
func (mm *Migrator) Close() error {
	srcErr, dbErr := mm.migrate.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

// MigrateUp is the one-shot form used when a store is opened.
func MigrateUp(dialect, target string) error {
	m, err := NewMigrator(dialect, target)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// pgxURL rewrites a postgres:// URL to the scheme the pgx v5 migrate
// driver registers.
func pgxURL(u string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(u, scheme) {
			return "pgx5://" + strings.TrimPrefix(u, scheme)
		}
	}
	return u
}

func sqliteURL(path string) string {
	p := filepath.ToSlash(path)
	if filepath.IsAbs(path) && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "sqlite://" + p
}
