// Package cache keeps built charts in memory for a bounded time.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL applies when New receives a non-positive TTL.
const DefaultTTL = time.Minute

type item[T any] struct {
	value    T
	deadline time.Time
}

// Option customises a Store.
type Option func(*settings)

type settings struct {
	now      func() time.Time
	interval time.Duration
}

// WithClock replaces time.Now when deciding expiry.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithSweepInterval sets how often expired items are dropped. Defaults to the TTL.
func WithSweepInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Store is a goroutine-safe key/value store whose items expire after a fixed TTL.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]item[T]
	ttl   time.Duration
	now   func() time.Time

	done     chan struct{}
	shutdown sync.Once
}

// New returns a Store and starts its sweeper. Stop releases the sweeper.
func New[T any](ttl time.Duration, opts ...Option) *Store[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := settings{now: time.Now, interval: ttl}
	for _, opt := range opts {
		opt(&s)
	}

	st := &Store[T]{
		items: map[string]item[T]{},
		ttl:   ttl,
		now:   s.now,
		done:  make(chan struct{}),
	}
	go st.sweep(s.interval)
	return st
}

// Get returns the value for key unless it is absent or past its deadline.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	it, found := s.items[key]
	s.mu.RUnlock()

	if !found || s.now().After(it.deadline) {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores value under key, replacing any previous value and deadline.
func (s *Store[T]) Set(key string, value T) {
	deadline := s.now().Add(s.ttl)

	s.mu.Lock()
	s.items[key] = item[T]{value: value, deadline: deadline}
	s.mu.Unlock()
}

// Delete drops key.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// Len counts stored items. Expired items count until the next sweep.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stop ends the sweeper. Later calls are no-ops.
func (s *Store[T]) Stop() {
	s.shutdown.Do(func() { close(s.done) })
}

func (s *Store[T]) sweep(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-tick.C:
			s.purge(s.now())
		}
	}
}

func (s *Store[T]) purge(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, it := range s.items {
		if at.After(it.deadline) {
			delete(s.items, key)
		}
	}
}
