// Package state holds the client-side state containers for the graph view,
// the assistant conversation, the generated timeline and the resume upload.
//
// Every container is a plain value type. Mutations are pure functions from
// one value to the next and are applied through a Store, which serializes
// writers and notifies subscribers. Reading a field and writing a derived
// field outside those functions is what the containers exist to prevent.
package state

import "sync"

// Store is an observable cell holding one state value.
type Store[S any] struct {
	mu        sync.RWMutex
	value     S
	nextID    int
	listeners map[int]func(S)
}

// NewStore creates a store holding initial.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{value: initial, listeners: make(map[int]func(S))}
}

// Get returns the current value.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Dispatch applies update to the current value and notifies subscribers with
// the result. Updates run one at a time.
func (s *Store[S]) Dispatch(update func(S) S) S {
	s.mu.Lock()
	s.value = update(s.value)
	next := s.value
	listeners := make([]func(S), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
