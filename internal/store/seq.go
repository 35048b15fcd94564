package store

import (
	"container/list"
	"time"

	"github.com/xtxerr/tsmap/internal/errors"
)

type seqEntry[V any] struct {
	key   int64
	value V
}

// SeqStore is the insertion-ordered backend: a hash index over a linked
// list recording insertion sequence. Point operations are O(1); Range scans
// the list in insertion order, which diverges from timestamp order whenever
// entries arrive out of chronological order. Callers must not assume sorted
// output from this backend.
//
// SeqStore is not safe for concurrent use; wrap it in Concurrent if shared.
type SeqStore[V any] struct {
	order *list.List
	index map[int64]*list.Element
}

// NewSeqStore creates an empty insertion-ordered store.
func NewSeqStore[V any]() *SeqStore[V] {
	return &SeqStore[V]{
		order: list.New(),
		index: make(map[int64]*list.Element),
	}
}

// Add inserts a new entry at ts, rejecting an occupied slot.
func (s *SeqStore[V]) Add(ts time.Time, value V) error {
	key := ts.UnixNano()
	if _, ok := s.index[key]; ok {
		return errors.NewDuplicateTimestamp(ts)
	}
	s.index[key] = s.order.PushBack(seqEntry[V]{key: key, value: value})
	return nil
}

// AddUnique inserts value at ts or at the nearest free random offset.
func (s *SeqStore[V]) AddUnique(ts time.Time, value V, maxOffset time.Duration) time.Time {
	return addUnique[V](s, ts, value, maxOffset)
}

// Range returns all values with start <= t <= end, in insertion order.
func (s *SeqStore[V]) Range(start, end time.Time) []V {
	lo, hi := start.UnixNano(), end.UnixNano()
	var out []V
	for e := s.order.Front(); e != nil; e = e.Next() {
		entry := e.Value.(seqEntry[V])
		if entry.key >= lo && entry.key <= hi {
			out = append(out, entry.value)
		}
	}
	return out
}

// Last returns the values recorded during the trailing span.
func (s *SeqStore[V]) Last(span time.Duration) []V {
	return last[V](s, span)
}

// All returns every stored value, in insertion order.
func (s *SeqStore[V]) All() []V {
	out := make([]V, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(seqEntry[V]).value)
	}
	return out
}

// Timestamps returns every stored timestamp, in insertion order.
func (s *SeqStore[V]) Timestamps() []time.Time {
	out := make([]time.Time, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, time.Unix(0, e.Value.(seqEntry[V]).key))
	}
	return out
}

// At returns the value stored at ts and whether one exists.
func (s *SeqStore[V]) At(ts time.Time) (V, bool) {
	e, ok := s.index[ts.UnixNano()]
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value.(seqEntry[V]).value, true
}

// Remove deletes the entry at ts if present.
func (s *SeqStore[V]) Remove(ts time.Time) bool {
	key := ts.UnixNano()
	e, ok := s.index[key]
	if !ok {
		return false
	}
	s.order.Remove(e)
	delete(s.index, key)
	return true
}

// Clear deletes all entries.
func (s *SeqStore[V]) Clear() {
	s.order.Init()
	s.index = make(map[int64]*list.Element)
}

// Len returns the number of entries.
func (s *SeqStore[V]) Len() int {
	return s.order.Len()
}

// IsEmpty returns true if the store holds no entries.
func (s *SeqStore[V]) IsEmpty() bool {
	return s.order.Len() == 0
}
