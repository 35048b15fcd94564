package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	testutil "github.com/xtxerr/tsmap/internal/testing"
)

func TestConcurrent_ParallelAddUnique(t *testing.T) {
	for kind := range backends {
		t.Run(string(kind), func(t *testing.T) {
			s, err := NewShared[int](kind)
			if err != nil {
				t.Fatalf("new shared: %v", err)
			}

			const (
				producers   = 10
				perProducer = 100
			)

			var g errgroup.Group
			base := time.Now()
			for p := 0; p < producers; p++ {
				p := p
				g.Go(func() error {
					for i := 0; i < perProducer; i++ {
						// Everyone targets the same instant to force the
						// collision-offset path.
						s.AddUnique(base, p*perProducer+i, time.Second)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}

			// No lost or duplicated entries.
			if got := s.Len(); got != producers*perProducer {
				t.Errorf("expected %d entries, got %d", producers*perProducer, got)
			}
			if got := len(s.Timestamps()); got != producers*perProducer {
				t.Errorf("expected %d distinct timestamps, got %d", producers*perProducer, got)
			}
		})
	}
}

func TestConcurrent_ReadersAndWriters(t *testing.T) {
	s, err := NewShared[int](BackendTree)
	if err != nil {
		t.Fatalf("new shared: %v", err)
	}

	var g errgroup.Group
	base := time.Now()

	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 250; i++ {
				s.AddUnique(base, i, time.Second)
			}
			return nil
		})
	}
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < 250; i++ {
				s.Range(base.Add(-time.Second), base.Add(2*time.Second))
				s.Last(time.Minute)
				s.Len()
				s.IsEmpty()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := s.Len(); got != 1000 {
		t.Errorf("expected 1000 entries, got %d", got)
	}
}

func TestConcurrent_AddVisibleAfterWrite(t *testing.T) {
	s := NewConcurrent(NewMapStore[string]())

	if err := s.Add(t0, "v"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got, ok := s.At(t0); !ok || got != "v" {
		t.Errorf("reader after writer should observe the write, got %q (ok=%v)", got, ok)
	}

	if err := s.Add(t0, "w"); err == nil {
		t.Error("duplicate add through the wrapper should still fail")
	}

	if !s.Remove(t0) {
		t.Error("remove through the wrapper should succeed")
	}
	s.Clear()
	if !s.IsEmpty() {
		t.Error("store should be empty")
	}
}

func TestConcurrent_WaitForData_Timeout(t *testing.T) {
	s := NewConcurrent(NewMapStore[int]())

	start := time.Now()
	signaled := s.WaitForData(100 * time.Millisecond)
	elapsed := time.Since(start)

	if signaled {
		t.Error("wait with no producer should time out")
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("returned before the timeout elapsed: %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("timeout massively overshot: %v", elapsed)
	}
}

func TestConcurrent_WaitForData_SignaledByAdd(t *testing.T) {
	s := NewConcurrent(NewMapStore[string]())

	gt := testutil.NewGoroutineTest(t)
	defer gt.Wait()

	ready := make(chan struct{})
	gt.Go(func() error {
		close(ready)
		if !s.WaitForData(5 * time.Second) {
			return fmt.Errorf("waiter timed out before the add")
		}
		return nil
	})

	<-ready
	time.Sleep(20 * time.Millisecond) // let the waiter block
	if err := s.Add(time.Now(), "v"); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestConcurrent_WaitForData_SignaledByAddUnique(t *testing.T) {
	s := NewConcurrent(NewTreeStore[string]())

	gt := testutil.NewGoroutineTest(t)
	defer gt.Wait()

	gt.Go(func() error {
		if !s.WaitForData(5 * time.Second) {
			return fmt.Errorf("waiter timed out before the insert")
		}
		return nil
	})

	time.Sleep(20 * time.Millisecond)
	s.AddUnique(time.Now(), "v", time.Second)
}

func TestConcurrent_NotifyWakesAllWaiters(t *testing.T) {
	s := NewConcurrent(NewMapStore[int]())

	const waiters = 5

	gt := testutil.NewGoroutineTest(t)
	defer gt.Wait()

	var started sync.WaitGroup
	started.Add(waiters)
	for i := 0; i < waiters; i++ {
		gt.Go(func() error {
			started.Done()
			if !s.WaitForData(5 * time.Second) {
				return fmt.Errorf("waiter not woken by broadcast")
			}
			return nil
		})
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond) // let every waiter block

	// One broadcast, no mutation, all waiters wake.
	s.NotifyDataAvailable()

	if s.Len() != 0 {
		t.Error("notify must not mutate the store")
	}
}

func TestConcurrent_WaitForData_Indefinite(t *testing.T) {
	s := NewConcurrent(NewMapStore[int]())

	gt := testutil.NewGoroutineTest(t)
	defer gt.Wait()

	gt.Go(func() error {
		// timeout <= 0 blocks until signaled and always reports true.
		if !s.WaitForData(0) {
			return fmt.Errorf("indefinite wait returned false")
		}
		return nil
	})

	time.Sleep(20 * time.Millisecond)
	s.NotifyDataAvailable()
}

func TestConcurrent_RejectedAddDoesNotSignal(t *testing.T) {
	s := NewConcurrent(NewMapStore[string]())
	if err := s.Add(t0, "v"); err != nil {
		t.Fatalf("add: %v", err)
	}

	done := make(chan bool, 1)
	go func() {
		done <- s.WaitForData(150 * time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	if err := s.Add(t0, "w"); err == nil {
		t.Fatal("duplicate add should fail")
	}

	if <-done {
		t.Error("a rejected add must not wake waiters")
	}
}

func TestConcurrent_Stats(t *testing.T) {
	s := NewConcurrent(NewTreeStore[int]())

	if err := s.Add(t0, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.AddUnique(t0, 2, time.Second)
	s.Remove(t0)
	s.Remove(t0) // absent, not counted
	s.NotifyDataAvailable()

	stats := s.Stats()
	if stats.AddCount != 2 {
		t.Errorf("expected add_count=2, got %d", stats.AddCount)
	}
	if stats.RemoveCount != 1 {
		t.Errorf("expected remove_count=1, got %d", stats.RemoveCount)
	}
	if stats.NotifyCount != 1 {
		t.Errorf("expected notify_count=1, got %d", stats.NotifyCount)
	}
	if stats.Len != 1 {
		t.Errorf("expected len=1, got %d", stats.Len)
	}
}

func BenchmarkConcurrent_AddUnique(b *testing.B) {
	s := NewConcurrent(NewTreeStore[int]())
	base := time.Now()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.AddUnique(base, i, time.Second)
			i++
		}
	})
}
