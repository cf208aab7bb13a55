// Package state provides a minimal observable value container: a
// mutex-guarded holder whose subscribers are notified on every update.
// It replaces the reactive-store pattern of the original web client with
// explicit listener registration and explicit disposal.
package state

import "sync"

// Listener receives the current value after each store update.
type Listener[T any] func(T)

// Store holds a single value and a list of subscribers. Listeners fire
// synchronously on the mutating goroutine, in registration order. Updates are
// not atomic with respect to listener execution: a listener observes the value
// it was handed, not necessarily the latest.
type Store[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    int
	listeners []entry[T]
}

type entry[T any] struct {
	id int
	fn Listener[T]
}

// New creates a store seeded with the given initial value.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies all subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(v)
	}
}

// Update applies fn to the current value under the lock, stores the result,
// and notifies all subscribers.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(v)
	}
}

// Subscribe registers a listener and returns its dispose function. When
// fireImmediately is true the listener is invoked once with the current value
// before Subscribe returns. Callers must invoke dispose on teardown; a leaked
// subscription keeps firing.
func (s *Store[T]) Subscribe(fn Listener[T], fireImmediately bool) (dispose func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, entry[T]{id: id, fn: fn})
	v := s.value
	s.mu.Unlock()

	if fireImmediately {
		fn(v)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshotListeners must be called with the lock held.
func (s *Store[T]) snapshotListeners() []entry[T] {
	out := make([]entry[T], len(s.listeners))
	copy(out, s.listeners)
	return out
}
