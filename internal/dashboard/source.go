// Package dashboard holds the dashboard's view of the season table: a
// time-bounded in-memory snapshot that reloads transparently and can be
// invalidated when the table file is replaced.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jyoun110/FantasyComp/internal/provider"
	"github.com/jyoun110/FantasyComp/internal/table"
)

// Snapshot is one loaded copy of the table. Records must not be modified.
type Snapshot struct {
	Records  []provider.Record
	LoadedAt time.Time
}

// Status describes the source for health endpoints.
type Status struct {
	Store         string    `json:"store"`
	Loaded        bool      `json:"loaded"`
	LoadedAt      time.Time `json:"loaded_at,omitempty"`
	Records       int       `json:"records"`
	Loads         int       `json:"loads"`
	Invalidations int       `json:"invalidations"`
	TTLSeconds    int       `json:"ttl_seconds"`
}

// Source caches the table loaded from a store.
type Source struct {
	store  table.Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu            sync.Mutex
	snap          *Snapshot
	loads         int
	invalidations int
	listeners     []func()
}

// NewSource returns a source over store. A non-positive ttl reloads on
// every call.
func NewSource(store table.Store, ttl time.Duration, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Store returns the underlying store.
func (s *Source) Store() table.Store {
	return s.store
}

// Table returns the cached snapshot, reloading it when it is missing or
// older than the TTL. Load errors are returned and not cached, so the next
// call tries again.
func (s *Source) Table(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.now().Sub(s.snap.LoadedAt) < s.ttl {
		return s.snap, nil
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Season table load failed", "store", s.store.Name(), "error", err)
		return nil, err
	}
	s.snap = &Snapshot{Records: records, LoadedAt: s.now()}
	s.loads++
	s.logger.Info("Season table loaded", "store", s.store.Name(), "records", len(records))
	return s.snap, nil
}

// Invalidate drops the snapshot and notifies listeners.
func (s *Source) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.invalidations++
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnInvalidate registers fn to run after every Invalidate.
func (s *Source) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Status reports the cached state without loading.
func (s *Source) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Store:         s.store.Name(),
		Loads:         s.loads,
		Invalidations: s.invalidations,
		TTLSeconds:    int(s.ttl.Seconds()),
	}
	if s.snap != nil {
		st.Loaded = true
		st.LoadedAt = s.snap.LoadedAt
		st.Records = len(s.snap.Records)
	}
	return st
}
