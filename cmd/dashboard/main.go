// Command dashboard serves the fantasy basketball dashboard.
//
// Usage:
//
//	fantasycomp-dashboard
//	API_PORT=8080 TABLE_PATH=output.csv fantasycomp-dashboard

// @title FantasyComp Dashboard API
// @version 1.0.0
// @description Weekly and season views over the fantasy basketball season table: weekly comparison, dense ranks, season averages, highs and lows.
// @host localhost:8501
// @BasePath /
// @schemes http https
// @contact.name FantasyComp
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/jyoun110/FantasyComp/internal/api"
	"github.com/jyoun110/FantasyComp/internal/cache"
	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/maintenance"
	"github.com/jyoun110/FantasyComp/internal/store"

	_ "github.com/jyoun110/FantasyComp/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Open the season table store
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open table store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Table source and response cache; replacing the table purges both
	src := dashboard.NewSource(st, cfg.TableCacheTTL, logger)
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	src.OnInvalidate(appCache.Purge)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "table_ttl", cfg.TableCacheTTL)

	// Warm the snapshot; a missing table is reported, not fatal
	if _, err := src.Table(ctx); err != nil {
		logger.Warn("Season table not loaded yet", "error", err)
	}

	// Watch the table file so a new extraction shows up immediately
	if cfg.TableStore == config.StoreFile && cfg.WatchTable {
		go func() {
			if err := dashboard.Watch(ctx, cfg.TablePath, src, logger); err != nil {
				logger.Warn("Table watcher stopped", "error", err)
			}
		}()
	}

	// Database stores are polled for a newer save; the file store is only
	// polled when it is not watched
	mcfg := maintenance.Config{PollInterval: cfg.TablePoll, WarmInterval: cfg.TableWarm}
	if cfg.TableStore == config.StoreFile && cfg.WatchTable {
		mcfg.PollInterval = 0
	}
	go maintenance.Start(ctx, src, mcfg, logger)

	// Create router
	router := api.NewRouter(src, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting FantasyComp dashboard",
			"addr", addr,
			"environment", cfg.Environment,
			"store", st.Name(),
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
