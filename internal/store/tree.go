package store

import (
	"time"

	"github.com/google/btree"

	"github.com/xtxerr/tsmap/internal/errors"
)

// treeDegree is the B-tree branching factor. 32 keeps nodes cache-friendly
// without deep trees for the entry counts this store is built for.
const treeDegree = 32

type treeEntry[V any] struct {
	key   int64
	value V
}

// TreeStore is the ordered-tree backend, a B-tree keyed by timestamp.
// Point operations are O(log n); Range extracts the contiguous sub-view
// bounded by [start, end] in O(log n + k). This is the only backend whose
// Range, All and Timestamps output is guaranteed ascending by timestamp.
//
// TreeStore is not safe for concurrent use; wrap it in Concurrent if shared.
type TreeStore[V any] struct {
	tree *btree.BTreeG[treeEntry[V]]
}

// NewTreeStore creates an empty ordered-tree store.
func NewTreeStore[V any]() *TreeStore[V] {
	return &TreeStore[V]{
		tree: btree.NewG(treeDegree, func(a, b treeEntry[V]) bool {
			return a.key < b.key
		}),
	}
}

// Add inserts a new entry at ts, rejecting an occupied slot.
func (s *TreeStore[V]) Add(ts time.Time, value V) error {
	item := treeEntry[V]{key: ts.UnixNano(), value: value}
	if s.tree.Has(item) {
		return errors.NewDuplicateTimestamp(ts)
	}
	s.tree.ReplaceOrInsert(item)
	return nil
}

// AddUnique inserts value at ts or at the nearest free random offset.
func (s *TreeStore[V]) AddUnique(ts time.Time, value V, maxOffset time.Duration) time.Time {
	return addUnique[V](s, ts, value, maxOffset)
}

// Range returns all values with start <= t <= end, ascending by timestamp.
//
// The end bound is handled in the iterator rather than as an exclusive
// pivot, so end == the maximum representable timestamp is safe.
func (s *TreeStore[V]) Range(start, end time.Time) []V {
	hi := end.UnixNano()
	var out []V
	s.tree.AscendGreaterOrEqual(treeEntry[V]{key: start.UnixNano()}, func(item treeEntry[V]) bool {
		if item.key > hi {
			return false
		}
		out = append(out, item.value)
		return true
	})
	return out
}

// Last returns the values recorded during the trailing span, ascending.
func (s *TreeStore[V]) Last(span time.Duration) []V {
	return last[V](s, span)
}

// All returns every stored value, ascending by timestamp.
func (s *TreeStore[V]) All() []V {
	out := make([]V, 0, s.tree.Len())
	s.tree.Ascend(func(item treeEntry[V]) bool {
		out = append(out, item.value)
		return true
	})
	return out
}

// Timestamps returns every stored timestamp, ascending.
func (s *TreeStore[V]) Timestamps() []time.Time {
	out := make([]time.Time, 0, s.tree.Len())
	s.tree.Ascend(func(item treeEntry[V]) bool {
		out = append(out, time.Unix(0, item.key))
		return true
	})
	return out
}

// At returns the value stored at ts and whether one exists.
func (s *TreeStore[V]) At(ts time.Time) (V, bool) {
	item, ok := s.tree.Get(treeEntry[V]{key: ts.UnixNano()})
	if !ok {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Remove deletes the entry at ts if present.
func (s *TreeStore[V]) Remove(ts time.Time) bool {
	_, ok := s.tree.Delete(treeEntry[V]{key: ts.UnixNano()})
	return ok
}

// Clear deletes all entries.
func (s *TreeStore[V]) Clear() {
	s.tree.Clear(false)
}

// Len returns the number of entries.
func (s *TreeStore[V]) Len() int {
	return s.tree.Len()
}

// IsEmpty returns true if the store holds no entries.
func (s *TreeStore[V]) IsEmpty() bool {
	return s.tree.Len() == 0
}
