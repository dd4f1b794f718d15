package domain

import "sync"

// Store is the record store: the single owner of every fetched or locally
// authored record, keyed by identity. Iteration order is not meaningful.
//
// All methods are safe for concurrent use. Mutations apply atomically with
// respect to Snapshot, so a reader never observes a partially applied merge.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
	version uint64
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
	}
}

// UpsertOne inserts the record, overwriting any existing record with the same
// identity. The whole value is replaced; there is no field-level merge.
func (s *Store) UpsertOne(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	s.version++
}

// UpsertMany applies UpsertOne semantics to each record in the batch. The
// batch is applied as a unit before any reader can observe it. An empty batch
// is a no-op and does not bump the version.
func (s *Store) UpsertMany(recs []Record) {
	if len(recs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.records[rec.ID] = rec
	}
	s.version++
}

// Get returns the record with the given identity, if present.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Snapshot returns a copy of all current records. Order is unspecified;
// callers that need an order must sort (see Project).
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	return recs
}

// Len returns the number of distinct identities in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version returns a counter that increases on every mutation. Dependents can
// compare versions to detect that a recompute is needed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
