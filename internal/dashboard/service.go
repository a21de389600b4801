package dashboard

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/cashflow/internal/kpi"
	"github.com/Veraticus/cashflow/internal/model"
)

// DefaultCacheSize bounds the number of cached snapshots.
const DefaultCacheSize = 64

// Service serves snapshots for a ledger, caching by content fingerprint.
// Ledgers are immutable, so entries never need invalidation.
type Service struct {
	engine  *kpi.Engine
	entries map[string]Snapshot
	order   []string
	maxSize int
	hits    int
	misses  int
	mu      sync.RWMutex
}

// NewService creates a Service. maxSize <= 0 uses DefaultCacheSize.
func NewService(engine *kpi.Engine, maxSize int) *Service {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Service{
		engine:  engine,
		entries: make(map[string]Snapshot),
		maxSize: maxSize,
	}
}

// Snapshot returns the snapshot of ledger under filter, computing it at most
// once per distinct (ledger, filter) content.
func (s *Service) Snapshot(ledger *model.Ledger, filter model.Filter) Snapshot {
	key := ledger.Fingerprint() + ":" + filter.Fingerprint()

	if snap, ok := s.get(key); ok {
		return snap
	}

	snap := Compute(s.engine, ledger, filter)
	s.set(key, snap)

	slog.Debug("computed dashboard snapshot",
		"transactions", snap.View.Len(),
		"alerts", len(snap.Alerts))

	return snap
}

func (s *Service) get(key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.entries[key]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return snap, ok
}

func (s *Service) set(key string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		return
	}
	if len(s.order) >= s.maxSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	s.entries[key] = snap
	s.order = append(s.order, key)
}

// Stats returns cache hits, misses and current size.
func (s *Service) Stats() (hits, misses, size int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses, len(s.entries)
}
