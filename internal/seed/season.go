package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/provider/yahoo"
	"github.com/jyoun110/FantasyComp/internal/table"
)

// Fetcher returns the raw scoreboard tree of one week.
type Fetcher interface {
	FetchWeek(ctx context.Context, week int) ([]byte, error)
}

// Options controls a season build.
type Options struct {
	Weeks       int
	Categories  league.Categories
	MaxAttempts int           // per week, including the first try
	Backoff     time.Duration // doubled after every failed attempt
}

// BuildSeason fetches and normalizes weeks 1..opts.Weeks in order.
//
// The table is all-or-nothing: if any week cannot be fetched after its
// retries, no records are returned. Rows keep upstream order within a week.
func BuildSeason(ctx context.Context, f Fetcher, opts Options, logger *slog.Logger) ([]provider.Record, Result, error) {
	var result Result
	var records []provider.Record

	for week := 1; week <= opts.Weeks; week++ {
		res, retries, err := BuildWeek(ctx, f, week, opts, logger)
		result.Retries += retries
		if err != nil {
			return nil, result, fmt.Errorf("week %d: %w", week, err)
		}
		result.WeeksFetched++
		if len(res.Records) > 0 {
			result.WeeksWithData++
		}
		for _, s := range res.Skips {
			result.AddSkip(s.Reason)
			logger.Debug("Skipped scoreboard fragment", "week", week, "skip", s.Error())
		}
		records = append(records, res.Records...)
		result.RecordsBuilt += len(res.Records)

		logger.Info("Week normalized", "week", week, "records", len(res.Records), "skipped", len(res.Skips))
	}

	return records, result, nil
}

// BuildWeek fetches one week, retrying transient failures, and normalizes
// it. It returns the number of retries used.
func BuildWeek(ctx context.Context, f Fetcher, week int, opts Options, logger *slog.Logger) (yahoo.NormalizeResult, int, error) {
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := opts.Backoff

	var raw []byte
	var err error
	retries := 0
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err = f.FetchWeek(ctx, week)
		if err == nil {
			break
		}
		if !yahoo.IsTransient(err) || attempt == attempts {
			return yahoo.NormalizeResult{}, retries, err
		}

		logger.Warn("Week fetch failed, retrying",
			"week", week, "attempt", attempt, "backoff", backoff, "error", err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return yahoo.NormalizeResult{}, retries, ctx.Err()
		}
		backoff *= 2
		retries++
	}

	return yahoo.Normalize(week, raw, opts.Categories), retries, nil
}

// Run builds the season and replaces the stored table. Nothing is written
// when the build fails.
func Run(ctx context.Context, f Fetcher, store table.Store, opts Options, logger *slog.Logger) (Result, error) {
	records, result, err := BuildSeason(ctx, f, opts, logger)
	if err != nil {
		return result, err
	}
	if err := store.Save(ctx, records); err != nil {
		return result, fmt.Errorf("save table: %w", err)
	}
	logger.Info("Season table saved", "store", store.Name(), "summary", result.Summary())
	return result, nil
}
