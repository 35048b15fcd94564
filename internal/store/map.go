package store

import (
	"time"

	"github.com/xtxerr/tsmap/internal/errors"
)

// MapStore is the hash-indexed backend. Point operations are expected O(1)
// amortized; Range scans every entry and returns matches in unspecified
// order. Best suited when range queries are rare.
//
// MapStore is not safe for concurrent use; wrap it in Concurrent if shared.
type MapStore[V any] struct {
	entries map[int64]V
}

// NewMapStore creates an empty hash-indexed store.
func NewMapStore[V any]() *MapStore[V] {
	return &MapStore[V]{
		entries: make(map[int64]V),
	}
}

// Add inserts a new entry at ts, rejecting an occupied slot.
func (s *MapStore[V]) Add(ts time.Time, value V) error {
	key := ts.UnixNano()
	if _, ok := s.entries[key]; ok {
		return errors.NewDuplicateTimestamp(ts)
	}
	s.entries[key] = value
	return nil
}

// AddUnique inserts value at ts or at the nearest free random offset.
func (s *MapStore[V]) AddUnique(ts time.Time, value V, maxOffset time.Duration) time.Time {
	return addUnique[V](s, ts, value, maxOffset)
}

// Range returns all values with start <= t <= end, in unspecified order.
func (s *MapStore[V]) Range(start, end time.Time) []V {
	lo, hi := start.UnixNano(), end.UnixNano()
	var out []V
	for key, value := range s.entries {
		if key >= lo && key <= hi {
			out = append(out, value)
		}
	}
	return out
}

// Last returns the values recorded during the trailing span.
func (s *MapStore[V]) Last(span time.Duration) []V {
	return last[V](s, span)
}

// All returns every stored value, in unspecified order.
func (s *MapStore[V]) All() []V {
	out := make([]V, 0, len(s.entries))
	for _, value := range s.entries {
		out = append(out, value)
	}
	return out
}

// Timestamps returns every stored timestamp, in unspecified order.
func (s *MapStore[V]) Timestamps() []time.Time {
	out := make([]time.Time, 0, len(s.entries))
	for key := range s.entries {
		out = append(out, time.Unix(0, key))
	}
	return out
}

// At returns the value stored at ts and whether one exists.
func (s *MapStore[V]) At(ts time.Time) (V, bool) {
	value, ok := s.entries[ts.UnixNano()]
	return value, ok
}

// Remove deletes the entry at ts if present.
func (s *MapStore[V]) Remove(ts time.Time) bool {
	key := ts.UnixNano()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Clear deletes all entries.
func (s *MapStore[V]) Clear() {
	s.entries = make(map[int64]V)
}

// Len returns the number of entries.
func (s *MapStore[V]) Len() int {
	return len(s.entries)
}

// IsEmpty returns true if the store holds no entries.
func (s *MapStore[V]) IsEmpty() bool {
	return len(s.entries) == 0
}
