// Package store implements an in-memory associative store that indexes
// opaque values by nanosecond-resolution timestamps.
//
// Three interchangeable backends implement the same Store contract:
//
//	┌──────────────┬───────────┬──────────────┬─────────────────────┐
//	│ Backend      │ Point ops │ Range        │ Iteration order     │
//	├──────────────┼───────────┼──────────────┼─────────────────────┤
//	│ MapStore     │ O(1)      │ O(n) scan    │ unspecified         │
//	│ TreeStore    │ O(log n)  │ O(log n + k) │ ascending timestamp │
//	│ SeqStore     │ O(1)      │ O(n) scan    │ insertion order     │
//	└──────────────┴───────────┴──────────────┴─────────────────────┘
//
// The backends are not safe for concurrent use. Concurrent wraps any one of
// them with a read-write lock and a broadcast-based wait/notify mechanism
// for producer/consumer coordination:
//
//	s := store.NewConcurrent(store.NewTreeStore[float64]())
//
//	// producer
//	s.AddUnique(time.Now(), 42.0, 0)
//
//	// consumer
//	if s.WaitForData(time.Second) {
//	    recent := s.Last(time.Minute)
//	    ...
//	}
//
// Result ordering is backend-defined: only TreeStore guarantees that Range,
// All and Timestamps return chronologically ascending sequences. All
// returned slices are freshly allocated; callers can never mutate internal
// state through a result.
package store
