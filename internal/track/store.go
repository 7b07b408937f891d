// Bounded per-vessel position history.
package track

import (
	"sort"
	"sync"
	"time"

	"seawatch/internal/marine"
)

const (
	// DefaultMaxEntries bounds the history kept per vessel.
	DefaultMaxEntries = 50
	// DefaultMaxAgeDays bounds how long entries are retained.
	DefaultMaxAgeDays = 30
)

// Store is the persistence port for the full vessel-id to history mapping.
// The engine never calls Load or Save on its own; callers decide when to
// persist and must tolerate partial persistence on abrupt termination.
type Store interface {
	Load() (map[string][]marine.PositionEntry, error)
	Save(map[string][]marine.PositionEntry) error
}

// TrackStore keeps a bounded, chronologically ordered sighting history per
// vessel id. Append and Cleanup are the only mutating operations; the
// caller serializes refresh cycles.
type TrackStore struct {
	mu         sync.Mutex
	histories  map[string][]marine.PositionEntry
	maxEntries int
}

// New returns an empty TrackStore with the default per-vessel bound.
func New() *TrackStore {
	return NewWithLimit(DefaultMaxEntries)
}

// NewWithLimit returns an empty TrackStore keeping at most maxEntries
// per vessel. Non-positive limits fall back to the default.
func NewWithLimit(maxEntries int) *TrackStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &TrackStore{
		histories:  make(map[string][]marine.PositionEntry),
		maxEntries: maxEntries,
	}
}

// Append inserts an entry into the vessel's history in chronological
// order. Duplicates are permitted; they are repeated observations. When
// the history exceeds the bound, the oldest entry is evicted.
func (s *TrackStore) Append(vesselID string, entry marine.PositionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.histories[vesselID]
	i := sort.Search(len(h), func(i int) bool {
		return h[i].Timestamp.After(entry.Timestamp)
	})
	h = append(h, marine.PositionEntry{})
	copy(h[i+1:], h[i:])
	h[i] = entry

	if len(h) > s.maxEntries {
		h = h[len(h)-s.maxEntries:]
	}
	s.histories[vesselID] = h
}

// AppendSighting records the position of a detected ship.
func (s *TrackStore) AppendSighting(ship marine.DetectedShip) {
	s.Append(ship.ID, marine.PositionEntry{
		Lat:       ship.Lat,
		Lon:       ship.Lon,
		Location:  ship.Location,
		Timestamp: ship.Timestamp,
		Source:    ship.Source,
	})
}

// Cleanup removes entries older than maxAgeDays relative to now and drops
// vessels whose history becomes empty.
func (s *TrackStore) Cleanup(now time.Time, maxAgeDays int) {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	cutoff := now.AddDate(0, 0, -maxAgeDays)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.histories {
		// Histories are ordered, so the survivors are a suffix.
		i := sort.Search(len(h), func(i int) bool {
			return h[i].Timestamp.After(cutoff)
		})
		if i == len(h) {
			delete(s.histories, id)
			continue
		}
		if i > 0 {
			s.histories[id] = append([]marine.PositionEntry(nil), h[i:]...)
		}
	}
}

// History returns a copy of the vessel's ordered history.
func (s *TrackStore) History(vesselID string) []marine.PositionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.histories[vesselID]
	if len(h) == 0 {
		return nil
	}
	out := make([]marine.PositionEntry, len(h))
	copy(out, h)
	return out
}

// Len returns the number of tracked vessels.
func (s *TrackStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.histories)
}

// Snapshot returns a deep copy of all histories, keyed by vessel id.
func (s *TrackStore) Snapshot() map[string][]marine.PositionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]marine.PositionEntry, len(s.histories))
	for id, h := range s.histories {
		c := make([]marine.PositionEntry, len(h))
		copy(c, h)
		out[id] = c
	}
	return out
}

// LoadFrom replaces the in-memory state with the contents of the store.
func (s *TrackStore) LoadFrom(store Store) error {
	data, err := store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = make(map[string][]marine.PositionEntry, len(data))
	for id, h := range data {
		c := make([]marine.PositionEntry, len(h))
		copy(c, h)
		sort.SliceStable(c, func(i, j int) bool {
			return c[i].Timestamp.Before(c[j].Timestamp)
		})
		if len(c) > s.maxEntries {
			c = c[len(c)-s.maxEntries:]
		}
		s.histories[id] = c
	}
	return nil
}

// SaveTo writes the current state to the store.
func (s *TrackStore) SaveTo(store Store) error {
	return store.Save(s.Snapshot())
}
