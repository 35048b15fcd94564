package store

import (
	"testing"
	"time"
)

// Ordering guarantees differ per backend: only TreeStore promises
// chronological output, SeqStore promises insertion order, MapStore
// promises nothing.

func TestTreeStore_AscendingRange(t *testing.T) {
	s := NewTreeStore[string]()

	// Inserted out of chronological order on purpose.
	if err := s.Add(t0.Add(time.Second), "b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(t0, "a"); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := s.Range(t0, t0.Add(time.Second))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b] ascending, got %v", got)
	}
}

func TestTreeStore_AscendingAll(t *testing.T) {
	s := NewTreeStore[int]()

	// Reverse chronological insertion.
	for i := 9; i >= 0; i-- {
		if err := s.Add(t0.Add(time.Duration(i)*time.Second), i); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	for i, v := range s.All() {
		if v != i {
			t.Fatalf("position %d: expected %d, got %d", i, i, v)
		}
	}

	stamps := s.Timestamps()
	for i := 1; i < len(stamps); i++ {
		if !stamps[i].After(stamps[i-1]) {
			t.Fatalf("timestamps not ascending at position %d", i)
		}
	}
}

func TestSeqStore_InsertionOrder(t *testing.T) {
	s := NewSeqStore[string]()

	// Insertion order deliberately disagrees with timestamp order.
	if err := s.Add(t0.Add(2*time.Second), "first-in"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(t0, "second-in"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(t0.Add(time.Second), "third-in"); err != nil {
		t.Fatalf("add: %v", err)
	}

	want := []string{"first-in", "second-in", "third-in"}

	all := s.All()
	for i, v := range all {
		if v != want[i] {
			t.Errorf("All position %d: expected %q, got %q", i, want[i], v)
		}
	}

	// Range filters by timestamp but keeps insertion order.
	got := s.Range(t0, t0.Add(2*time.Second))
	for i, v := range got {
		if v != want[i] {
			t.Errorf("Range position %d: expected %q, got %q", i, want[i], v)
		}
	}
}

func TestSeqStore_OrderSurvivesRemove(t *testing.T) {
	s := NewSeqStore[string]()

	for i, v := range []string{"a", "b", "c", "d"} {
		if err := s.Add(t0.Add(time.Duration(i)*time.Second), v); err != nil {
			t.Fatalf("add %q: %v", v, err)
		}
	}

	s.Remove(t0.Add(time.Second)) // drop "b"

	want := []string{"a", "c", "d"}
	for i, v := range s.All() {
		if v != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], v)
		}
	}
}

func TestTreeStore_RangeBoundaries(t *testing.T) {
	s := NewTreeStore[int]()
	for i := 0; i < 10; i++ {
		if err := s.Add(t0.Add(time.Duration(i)*time.Second), i); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	// Bounds land exactly on entries: both included.
	got := s.Range(t0.Add(3*time.Second), t0.Add(6*time.Second))
	if len(got) != 4 || got[0] != 3 || got[3] != 6 {
		t.Errorf("expected [3 4 5 6], got %v", got)
	}

	// Bounds between entries.
	got = s.Range(t0.Add(2500*time.Millisecond), t0.Add(6500*time.Millisecond))
	if len(got) != 4 || got[0] != 3 || got[3] != 6 {
		t.Errorf("expected [3 4 5 6], got %v", got)
	}
}
