package controller

import (
	"context"
	"sync"

	"sparin/pkg/resource"
)

// Loader is one repository call producing a terminal Resource.
type Loader[T any] func(ctx context.Context) resource.Resource[T]

// Controller drives one load-based screen concern: Loading is published,
// then exactly one terminal state per underlying call. Error states are
// terminal until Retry.
type Controller[T any] struct {
	state     *State[T]
	load      Loader[T]
	startOnce sync.Once
}

func New[T any](load Loader[T]) *Controller[T] {
	return &Controller[T]{
		state: NewState[T](),
		load:  load,
	}
}

// Start issues the primary load exactly once; later calls are no-ops.
func (c *Controller[T]) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.dispatch(ctx)
	})
}

// Retry re-issues the load.
func (c *Controller[T]) Retry(ctx context.Context) {
	c.dispatch(ctx)
}

// Reset returns to Idle without a network call.
func (c *Controller[T]) Reset() {
	c.state.Publish(resource.Idle[T]())
}

// Refresh re-runs the load without an intermediate Loading state, used
// after a mutation when the previous data should stay visible.
func (c *Controller[T]) Refresh(ctx context.Context) {
	go func() {
		c.state.Publish(c.load(ctx))
	}()
}

func (c *Controller[T]) dispatch(ctx context.Context) {
	c.state.Publish(resource.Loading[T]())
	go func() {
		c.state.Publish(c.load(ctx))
	}()
}

func (c *Controller[T]) State() resource.Resource[T] {
	return c.state.Get()
}

func (c *Controller[T]) Watch(ctx context.Context) <-chan resource.Resource[T] {
	return c.state.Watch(ctx)
}
