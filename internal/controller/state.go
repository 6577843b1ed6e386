// Package controller holds the per-screen view-state owners. A controller
// issues its primary load exactly once on Start, re-issues it on Retry,
// and drops back to Idle on Reset without touching the network. State
// transitions for one controller are published sequentially; watchers
// never observe them interleaved.
package controller

import (
	"context"
	"sync"

	"sparin/pkg/logger"
	"sparin/pkg/resource"
)

const watchBuffer = 16

// State is one observable Resource-shaped value. Publication is
// serialized; each watcher gets the current value on registration and
// every transition after it, in order.
type State[T any] struct {
	mu       sync.Mutex
	current  resource.Resource[T]
	watchers map[int]chan resource.Resource[T]
	nextID   int
}

func NewState[T any]() *State[T] {
	return &State[T]{
		current:  resource.Idle[T](),
		watchers: make(map[int]chan resource.Resource[T]),
	}
}

func (s *State[T]) Get() resource.Resource[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Watch returns a channel replaying the current value and then every
// later transition. The channel closes when ctx ends. A watcher that
// stops draining loses updates rather than blocking the publisher.
func (s *State[T]) Watch(ctx context.Context) <-chan resource.Resource[T] {
	ch := make(chan resource.Resource[T], watchBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- s.current
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if _, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
		s.mu.Unlock()
	}()

	return ch
}

// Publish makes r the current value and fans it out to all watchers.
func (s *State[T]) Publish(r resource.Resource[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
	for id, ch := range s.watchers {
		select {
		case ch <- r:
		default:
			logger.Warn("State watcher %d too slow, dropping update", id)
		}
	}
}
