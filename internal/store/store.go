package store

import (
	"math/rand"
	"time"

	"github.com/xtxerr/tsmap/config"
)

// Entry is a single timestamped value.
type Entry[V any] struct {
	Timestamp time.Time
	Value     V
}

// Store is the contract every backend implements.
//
// Timestamps are unique within a store at nanosecond resolution: two
// time.Time values with the same UnixNano refer to the same slot. There is
// no update-in-place; an occupied slot must be removed before it can be
// reused.
//
// Implementations are not safe for concurrent use unless wrapped in
// Concurrent.
type Store[V any] interface {
	// Add inserts a new entry at ts. It returns a duplicate-timestamp error
	// (errors.IsDuplicateTimestamp) if the slot is occupied, leaving the
	// store unchanged.
	Add(ts time.Time, value V) error

	// AddUnique inserts value at ts if the slot is free and returns ts.
	// If the slot is occupied, it retries with a uniformly random positive
	// offset in [0, maxOffset) added to ts until a free slot is found, and
	// returns the timestamp actually used. It never fails and never
	// overwrites. A maxOffset <= 0 selects config.DefaultMaxOffset.
	AddUnique(ts time.Time, value V, maxOffset time.Duration) time.Time

	// Range returns the values whose timestamp t satisfies start <= t <= end,
	// both bounds inclusive. An empty range yields an empty result, not an
	// error. Ordering is backend-defined; see the package documentation.
	Range(start, end time.Time) []V

	// Last returns the values recorded during the trailing span, i.e.
	// Range(now-span, now) with the wall clock read once at call time.
	Last(span time.Duration) []V

	// All returns every stored value.
	All() []V

	// Timestamps returns every stored timestamp.
	Timestamps() []time.Time

	// At returns the value stored at ts and whether one exists.
	At(ts time.Time) (V, bool)

	// Remove deletes the entry at ts if present and reports whether a
	// deletion occurred. Removing an absent timestamp is a no-op.
	Remove(ts time.Time) bool

	// Clear deletes all entries.
	Clear()

	// Len returns the number of entries.
	Len() int

	// IsEmpty returns true if the store holds no entries.
	IsEmpty() bool
}

// addUnique implements the collision-offset retry loop shared by all
// backends. Each attempt draws a fresh offset from the original timestamp,
// so a second collision simply triggers another draw.
func addUnique[V any](s Store[V], ts time.Time, value V, maxOffset time.Duration) time.Time {
	if maxOffset <= 0 {
		maxOffset = config.DefaultMaxOffset
	}

	candidate := ts
	for {
		if err := s.Add(candidate, value); err == nil {
			return candidate
		}
		candidate = ts.Add(time.Duration(rand.Int63n(int64(maxOffset))))
	}
}

// last reads the wall clock once and delegates to Range.
func last[V any](s Store[V], span time.Duration) []V {
	now := time.Now()
	return s.Range(now.Add(-span), now)
}
