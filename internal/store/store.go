package store

import (
	"sort"
	"sync"

	"github.com/dgnsrekt/gexray/internal/exposure"
)

// SnapshotStore holds the latest exposure snapshot per symbol. Only the
// newest snapshot is retained; history belongs to consumers, not here.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*exposure.Snapshot
}

func New() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]*exposure.Snapshot),
	}
}

// Put replaces the symbol's snapshot.
func (s *SnapshotStore) Put(symbol string, snap *exposure.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[symbol] = snap
}

// Get returns the latest snapshot for a symbol, or false when none has been
// calculated yet.
func (s *SnapshotStore) Get(symbol string) (*exposure.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[symbol]
	return snap, ok
}

// Symbols returns the symbols with a stored snapshot, sorted.
func (s *SnapshotStore) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.snapshots))
	for sym := range s.snapshots {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
