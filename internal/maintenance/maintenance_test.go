package maintenance

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type savedStore struct {
	mu    sync.Mutex
	saved time.Time
	err   error
	loads int
}

func (s *savedStore) Name() string                                  { return "saved" }
func (s *savedStore) Save(context.Context, []provider.Record) error { return nil }
func (s *savedStore) Load(context.Context) ([]provider.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return nil, nil
}
func (s *savedStore) SavedAt(context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.err
}
func (s *savedStore) Close() error { return nil }

func (s *savedStore) set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = t
}

func TestPollerInvalidatesOnNewerSave(t *testing.T) {
	base := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	store := &savedStore{saved: base}
	src := dashboard.NewSource(store, time.Hour, quiet)
	p := &poller{src: src, logger: quiet}
	ctx := context.Background()

	assert.False(t, p.check(ctx), "first check only records")
	assert.False(t, p.check(ctx), "unchanged")

	store.set(base.Add(time.Hour))
	assert.True(t, p.check(ctx))
	assert.Equal(t, 1, src.Status().Invalidations)
	assert.False(t, p.check(ctx))
}

func TestPollerIgnoresUnavailableStore(t *testing.T) {
	store := &savedStore{err: table.ErrUnavailable}
	src := dashboard.NewSource(store, time.Hour, quiet)
	p := &poller{src: src, logger: quiet}
	assert.False(t, p.check(context.Background()))

	store.mu.Lock()
	store.err = nil
	store.saved = time.Now()
	store.mu.Unlock()
	assert.False(t, p.check(context.Background()), "first available save time is the baseline")
	assert.Equal(t, 0, src.Status().Invalidations)
}

func TestStartWarmsAndStops(t *testing.T) {
	store := &savedStore{saved: time.Now()}
	src := dashboard.NewSource(store, time.Hour, quiet)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Start(ctx, src, Config{WarmInterval: 10 * time.Millisecond}, quiet)
		close(done)
	}()

	assert.Eventually(t, func() bool { return src.Status().Loaded }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
