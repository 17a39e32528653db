// Package store opens the season table store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/db"
	"github.com/jyoun110/FantasyComp/internal/table"
)

// Open returns the configured store. Database stores are migrated first.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (table.Store, error) {
	switch cfg.TableStore {
	case config.StoreFile:
		logger.Info("Using file table store", "path", cfg.TablePath)
		return table.NewFileStore(cfg.TablePath, cfg.Categories), nil

	case config.StorePostgres:
		if err := db.MigrateUp(config.StorePostgres, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres table store",
			"min_conns", cfg.DBPoolMinConns, "max_conns", cfg.DBPoolMaxConns)
		return db.NewPostgresStore(pool), nil

	case config.StoreSQLite:
		s, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using sqlite table store", "path", cfg.SQLitePath)
		return s, nil
	}
	return nil, fmt.Errorf("unknown table store %q", cfg.TableStore)
}
