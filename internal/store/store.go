// Package store holds the in-memory record collection the dashboard queries.
// The collection is generated (or seeded) once and treated as an immutable
// snapshot from then on; replacing it swaps the whole slice, never an element.
package store

import (
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/siteboard/internal/model"
)

// Config controls first-access generation.
type Config struct {
	Count int   // number of records to generate
	Seed  int64 // RNG seed; 0 means a time-derived seed
}

// Store caches one record snapshot for the process lifetime.
type Store struct {
	cfg Config

	once    sync.Once
	mu      sync.RWMutex
	records []model.Record
}

// New creates a Store that will generate cfg.Count records on first access.
func New(cfg Config) *Store {
	if cfg.Count <= 0 {
		cfg.Count = 5000
	}
	return &Store{cfg: cfg}
}

// Records returns the current snapshot, generating it on first access.
// The returned slice is shared and must be treated as read-only.
func (s *Store) Records() []model.Record {
	s.once.Do(func() {
		recs := Generate(s.cfg.Count, s.cfg.Seed)
		s.mu.Lock()
		s.records = recs
		s.mu.Unlock()
		zap.L().Info("store: generated records", zap.Int("count", len(recs)))
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len reports the snapshot size, generating on first access.
func (s *Store) Len() int {
	return len(s.Records())
}

// Get returns the record with the given id from the current snapshot.
func (s *Store) Get(id string) (model.Record, bool) {
	for _, r := range s.Records() {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}

// Replace swaps the whole collection for a seeded one. The incoming records
// are validated as a set; individual records are never mutated in place.
func (s *Store) Replace(records []model.Record) error {
	if err := Validate(records); err != nil {
		return err
	}

	// Arm the once so a later Records() call does not overwrite the seed.
	s.once.Do(func() {})

	snapshot := make([]model.Record, len(records))
	copy(snapshot, records)

	s.mu.Lock()
	s.records = snapshot
	s.mu.Unlock()
	zap.L().Info("store: replaced records", zap.Int("count", len(snapshot)))
	return nil
}

// Validate checks a candidate collection: unique non-empty ids, coordinates
// inside WGS84 bounds, known statuses.
func Validate(records []model.Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return eris.New(fmt.Sprintf("store: record %d has empty id", i))
		}
		if _, dup := seen[r.ID]; dup {
			return eris.New(fmt.Sprintf("store: duplicate id %s", r.ID))
		}
		seen[r.ID] = struct{}{}
		if r.Latitude < -90 || r.Latitude > 90 {
			return eris.New(fmt.Sprintf("store: record %s latitude %f out of range", r.ID, r.Latitude))
		}
		if r.Longitude < -180 || r.Longitude > 180 {
			return eris.New(fmt.Sprintf("store: record %s longitude %f out of range", r.ID, r.Longitude))
		}
		if !r.Status.Valid() {
			return eris.New(fmt.Sprintf("store: record %s has unknown status %q", r.ID, r.Status))
		}
	}
	return nil
}
