// Package maintenance runs periodic background tasks for the dashboard as
// Go tickers. Database stores have no file to watch, so a new extraction is
// noticed by polling the store's save time.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jyoun110/FantasyComp/internal/dashboard"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PollInterval time.Duration // Compare the store's save time with the last one seen
	WarmInterval time.Duration // Reload the snapshot before a request has to
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: 1 * time.Minute,
		WarmInterval: 15 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, src *dashboard.Source, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"poll", cfg.PollInterval,
		"warm", cfg.WarmInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.PollInterval > 0 {
		p := &poller{src: src, logger: logger}
		p.check(ctx) // record the current save time
		t := time.NewTicker(cfg.PollInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "poll", func() { p.check(ctx) })
	}

	if cfg.WarmInterval > 0 {
		t := time.NewTicker(cfg.WarmInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "warm", func() { warm(ctx, src, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// poller invalidates the source when the store reports a newer save.
type poller struct {
	src    *dashboard.Source
	logger *slog.Logger
	last   time.Time
}

// check returns whether it invalidated the source. The first successful
// check only records the save time.
func (p *poller) check(ctx context.Context) bool {
	saved, err := p.src.Store().SavedAt(ctx)
	if err != nil {
		p.logger.Debug("Poll: table save time unavailable", "error", err)
		return false
	}
	if p.last.IsZero() {
		p.last = saved
		return false
	}
	if !saved.After(p.last) {
		return false
	}
	p.logger.Info("Poll: season table replaced", "saved_at", saved, "previous", p.last)
	p.last = saved
	p.src.Invalidate()
	return true
}

// warm loads the snapshot so the next request does not pay for it.
func warm(ctx context.Context, src *dashboard.Source, logger *slog.Logger) {
	start := time.Now()
	snap, err := src.Table(ctx)
	if err != nil {
		logger.Warn("Warm: failed to load season table", "error", err)
		return
	}
	logger.Debug("Warm: season table ready", "records", len(snap.Records), "duration", time.Since(start).Round(time.Millisecond))
}
