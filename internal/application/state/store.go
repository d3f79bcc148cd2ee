package state

import (
	"sync"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
)

// Store owns the session dataset, the single shared mutable resource of the
// core. Every mutation goes through Update, which hands the function the
// current dataset under the lock. Update functions must derive the next
// state from that argument, never from a previously captured copy.
type Store struct {
	mu sync.RWMutex
	ds entity.Dataset
}

// NewStore creates an empty store with defaults applied.
func NewStore() *Store {
	return &Store{ds: entity.NewDataset()}
}

// Update applies fn to the live dataset under the write lock. Mutations are
// applied in call order.
func (s *Store) Update(fn func(ds *entity.Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.ds)
}

// Snapshot returns a deep copy of the current dataset for read-only
// derivation work.
func (s *Store) Snapshot() entity.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.Clone()
}

// Replace overwrites the dataset wholesale. Used by the sync controller for
// cache loads and remote refreshes; never a merge.
func (s *Store) Replace(ds entity.Dataset) {
	ds.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}

// Clear resets the dataset to empty defaults (sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = entity.NewDataset()
}
