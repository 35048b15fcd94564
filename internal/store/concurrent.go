package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// Concurrent wraps exactly one backend with a read-write lock and a
// broadcast-based wait/notify mechanism, making it safe for shared use by
// parallel producers and consumers.
//
// Read operations (Range, Last, All, Timestamps, At, Len, IsEmpty) acquire
// shared access and may run concurrently. Write operations (Add, AddUnique,
// Remove, Clear) acquire exclusive access. Writes are totally ordered by
// lock acquisition; a reader that locks after a writer unlocks observes
// that writer's effects.
//
// Every successful Add or AddUnique broadcasts a data-available signal to
// all goroutines currently blocked in WaitForData. The broadcast is
// implemented by closing a channel and replacing it, so a single signal
// wakes every waiter, matching condition-variable Broadcast semantics.
type Concurrent[V any] struct {
	mu      sync.RWMutex
	backend Store[V]

	// signalMu guards the swap of signal. Waiters capture the current
	// channel before blocking; notify closes it and installs a fresh one.
	signalMu sync.Mutex
	signal   chan struct{}

	// Statistics
	addCount    atomic.Int64
	removeCount atomic.Int64
	notifyCount atomic.Int64
	waitCount   atomic.Int64
}

// NewConcurrent wraps backend with the concurrency layer. The backend must
// not be used directly afterwards.
func NewConcurrent[V any](backend Store[V]) *Concurrent[V] {
	return &Concurrent[V]{
		backend: backend,
		signal:  make(chan struct{}),
	}
}

// Add inserts a new entry at ts under the write lock. A successful insert
// wakes all goroutines blocked in WaitForData.
func (c *Concurrent[V]) Add(ts time.Time, value V) error {
	c.mu.Lock()
	err := c.backend.Add(ts, value)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.addCount.Add(1)
	c.broadcast()
	return nil
}

// AddUnique inserts value at ts or at a collision-free random offset, under
// the write lock. The check-and-insert loop runs atomically with respect to
// other writers. The insert wakes all goroutines blocked in WaitForData.
func (c *Concurrent[V]) AddUnique(ts time.Time, value V, maxOffset time.Duration) time.Time {
	c.mu.Lock()
	actual := c.backend.AddUnique(ts, value, maxOffset)
	c.mu.Unlock()

	c.addCount.Add(1)
	c.broadcast()
	return actual
}

// Range returns the values with start <= t <= end under the read lock.
func (c *Concurrent[V]) Range(start, end time.Time) []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.Range(start, end)
}

// Last returns the values recorded during the trailing span under the read
// lock.
func (c *Concurrent[V]) Last(span time.Duration) []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.Last(span)
}

// All returns every stored value under the read lock.
func (c *Concurrent[V]) All() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.All()
}

// Timestamps returns every stored timestamp under the read lock.
func (c *Concurrent[V]) Timestamps() []time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.Timestamps()
}

// At returns the value stored at ts under the read lock.
func (c *Concurrent[V]) At(ts time.Time) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.At(ts)
}

// Remove deletes the entry at ts under the write lock.
func (c *Concurrent[V]) Remove(ts time.Time) bool {
	c.mu.Lock()
	removed := c.backend.Remove(ts)
	c.mu.Unlock()

	if removed {
		c.removeCount.Add(1)
	}
	return removed
}

// Clear deletes all entries under the write lock.
func (c *Concurrent[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend.Clear()
}

// Len returns the number of entries under the read lock.
func (c *Concurrent[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.Len()
}

// IsEmpty returns true if the store holds no entries, under the read lock.
func (c *Concurrent[V]) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend.IsEmpty()
}

// WaitForData blocks until a data-available signal is broadcast, returning
// true, or until timeout elapses first, returning false. A timeout <= 0
// blocks indefinitely and always returns true once signaled.
//
// Only signals broadcast after the wait begins are observed; timeout expiry
// is the sole cancellation path.
func (c *Concurrent[V]) WaitForData(timeout time.Duration) bool {
	c.signalMu.Lock()
	signal := c.signal
	c.signalMu.Unlock()

	c.waitCount.Add(1)

	if timeout <= 0 {
		<-signal
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-signal:
		return true
	case <-timer.C:
		return false
	}
}

// NotifyDataAvailable broadcasts a data-available signal without mutating
// the store. It lets producers wake consumers without inserting a sentinel
// entry.
func (c *Concurrent[V]) NotifyDataAvailable() {
	c.notifyCount.Add(1)
	c.broadcast()
}

// broadcast wakes every goroutine currently blocked in WaitForData.
func (c *Concurrent[V]) broadcast() {
	c.signalMu.Lock()
	close(c.signal)
	c.signal = make(chan struct{})
	c.signalMu.Unlock()
}

// Stats is a point-in-time snapshot of wrapper activity.
type Stats struct {
	Len         int
	AddCount    int64
	RemoveCount int64
	NotifyCount int64
	WaitCount   int64
}

// Stats returns a snapshot of wrapper statistics.
func (c *Concurrent[V]) Stats() Stats {
	return Stats{
		Len:         c.Len(),
		AddCount:    c.addCount.Load(),
		RemoveCount: c.removeCount.Load(),
		NotifyCount: c.notifyCount.Load(),
		WaitCount:   c.waitCount.Load(),
	}
}
