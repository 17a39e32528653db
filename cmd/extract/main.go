// Command extract builds the season table from the Yahoo Fantasy API.
//
// Usage:
//
//	fantasycomp-extract run
//	fantasycomp-extract run --weeks 12 --store csv --out output.csv
//	fantasycomp-extract week --week 5
//	fantasycomp-extract league
//	fantasycomp-extract migrate --store sqlite
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/db"
	"github.com/jyoun110/FantasyComp/internal/provider/yahoo"
	"github.com/jyoun110/FantasyComp/internal/seed"
	"github.com/jyoun110/FantasyComp/internal/store"
	"github.com/jyoun110/FantasyComp/internal/table"
)

var (
	logger  = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	verbose bool
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "fantasycomp-extract",
		Short:         "Fantasy basketball season table extractor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log skipped fragments and retries at debug level")

	root.AddCommand(runCmd())
	root.AddCommand(weekCmd())
	root.AddCommand(leagueCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage names the failure class so configuration, authentication and
// network problems read differently.
func exitMessage(err error) string {
	switch {
	case errors.Is(err, config.ErrMissingCredentials):
		return "configuration error: " + err.Error()
	case errors.Is(err, yahoo.ErrAuth):
		return "authentication error: " + err.Error() + " (check CONSUMER_KEY, CONSUMER_SECRET and REFRESH_TOKEN)"
	case errors.Is(err, yahoo.ErrTransient):
		return "network error: " + err.Error() + " (the previous table was left in place)"
	case errors.Is(err, yahoo.ErrNoLeague):
		return "league error: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		weeks     int
		storeKind string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch every week of the season and replace the stored table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(func(ctx context.Context, cfg *config.Config, sess *yahoo.Session) error {
				if err := applyStoreFlags(cfg, storeKind, out); err != nil {
					return err
				}
				if weeks > 0 {
					cfg.SeasonWeeks = weeks
				}

				st, err := store.Open(ctx, cfg, logger)
				if err != nil {
					return fmt.Errorf("open table store: %w", err)
				}
				defer st.Close()

				start := time.Now()
				result, err := seed.Run(ctx, sess, st, seedOptions(cfg), logger)
				if err != nil {
					logger.Error("Extraction failed", "summary", result.Summary(), "error", err)
					return err
				}
				logger.Info("Extraction finished",
					"league_key", sess.LeagueKey(),
					"store", st.Name(),
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 0, "number of weeks to fetch (default SEASON_WEEKS)")
	cmd.Flags().StringVar(&storeKind, "store", "", "table store: xlsx, csv, sqlite or postgres (default TABLE_STORE)")
	cmd.Flags().StringVar(&out, "out", "", "table file or SQLite database path")
	return cmd
}

// applyStoreFlags overrides the configured store. xlsx and csv select the
// file store and pick a default file name when --out is not given.
func applyStoreFlags(cfg *config.Config, kind, out string) error {
	switch strings.ToLower(kind) {
	case "":
	case "xlsx", "csv":
		cfg.TableStore = config.StoreFile
		if out == "" {
			out = "output." + strings.ToLower(kind)
		}
	case config.StoreFile, config.StoreSQLite, config.StorePostgres:
		cfg.TableStore = strings.ToLower(kind)
	default:
		return fmt.Errorf("unknown --store %q: use xlsx, csv, sqlite or postgres", kind)
	}
	if cfg.TableStore == config.StorePostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set for the postgres store")
	}
	if out == "" {
		return nil
	}
	switch cfg.TableStore {
	case config.StoreFile:
		cfg.TablePath = out
	case config.StoreSQLite:
		cfg.SQLitePath = out
	default:
		return fmt.Errorf("--out does not apply to the %s store", cfg.TableStore)
	}
	return nil
}

func seedOptions(cfg *config.Config) seed.Options {
	return seed.Options{
		Weeks:       cfg.SeasonWeeks,
		Categories:  cfg.Categories,
		MaxAttempts: cfg.MaxFetchAttempts,
		Backoff:     cfg.RetryBackoff,
	}
}

// --------------------------------------------------------------------------
// week command
// --------------------------------------------------------------------------

func weekCmd() *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Fetch and normalize one week without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if week < 1 {
				return fmt.Errorf("--week must be a positive week number")
			}
			return runExtract(func(ctx context.Context, cfg *config.Config, sess *yahoo.Session) error {
				res, retries, err := seed.BuildWeek(ctx, sess, week, seedOptions(cfg), logger)
				if err != nil {
					return fmt.Errorf("week %d: %w", week, err)
				}
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, strings.Join(table.Header(cfg.Categories), "\t"))
				for _, r := range res.Records {
					fmt.Fprintln(w, strings.Join(table.EncodeRow(r, cfg.Categories), "\t"))
				}
				for _, s := range res.Skips {
					fmt.Fprintln(w, "skipped:", s.Error())
				}
				logger.Info("Week normalized", "week", week, "records", len(res.Records), "skipped", len(res.Skips), "retries", retries)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "week number")
	return cmd
}

// --------------------------------------------------------------------------
// league command
// --------------------------------------------------------------------------

func leagueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "league",
		Short: "Print the league key the extractor will use",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(func(ctx context.Context, cfg *config.Config, sess *yahoo.Session) error {
				fmt.Fprintln(cmd.OutOrStdout(), sess.LeagueKey())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	var (
		storeKind string
		down      bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the table store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := applyStoreFlags(cfg, storeKind, ""); err != nil {
				return err
			}

			var target string
			switch cfg.TableStore {
			case config.StorePostgres:
				target = cfg.DatabaseURL
			case config.StoreSQLite:
				target = cfg.SQLitePath
			default:
				return fmt.Errorf("the %s store has no migrations", cfg.TableStore)
			}

			m, err := db.NewMigrator(cfg.TableStore, target)
			if err != nil {
				return err
			}
			defer m.Close()

			if down {
				err = m.Down()
			} else {
				err = m.Up()
			}
			if err != nil {
				return err
			}
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			logger.Info("Migrations applied", "store", cfg.TableStore, "version", version, "dirty", dirty, "down", down)
			return nil
		},
	}
	cmd.Flags().StringVar(&storeKind, "store", "", "sqlite or postgres (default TABLE_STORE)")
	cmd.Flags().BoolVar(&down, "down", false, "roll back every migration")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runExtract loads config, checks credentials before any network call and
// opens an authenticated session bound to the league.
func runExtract(fn func(ctx context.Context, cfg *config.Config, sess *yahoo.Session) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	creds, err := cfg.Credentials()
	if err != nil {
		return err
	}

	client := yahoo.NewClient(ctx, creds, yahoo.OptionsFromConfig(cfg), logger)
	sess, err := yahoo.OpenSession(ctx, client, cfg.GameCode, cfg.LeagueKey, logger)
	if err != nil {
		return err
	}
	return fn(ctx, cfg, sess)
}
