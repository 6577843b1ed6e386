package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/pkg/resource"
)

func recv[T any](t *testing.T, ch <-chan resource.Resource[T]) resource.Resource[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "watch channel closed")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state transition")
		return resource.Idle[T]()
	}
}

func TestStartPublishesLoadingThenTerminal(t *testing.T) {
	release := make(chan struct{})
	c := New(func(ctx context.Context) resource.Resource[int] {
		<-release
		return resource.Success(42)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watch := c.Watch(ctx)
	assert.True(t, recv(t, watch).IsIdle())

	c.Start(ctx)
	assert.True(t, recv(t, watch).IsLoading())
	assert.True(t, c.State().IsLoading())

	close(release)
	got := recv(t, watch)
	require.True(t, got.IsSuccess())
	assert.Equal(t, 42, got.MustData())
}

func TestStartIsANoOpAfterTheFirstCall(t *testing.T) {
	var calls int64
	c := New(func(ctx context.Context) resource.Resource[string] {
		atomic.AddInt64(&calls, 1)
		return resource.Success("done")
	})
	ctx := context.Background()

	c.Start(ctx)
	c.Start(ctx)
	c.Start(ctx)

	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestRetryReissuesAfterAnError(t *testing.T) {
	var calls int64
	c := New(func(ctx context.Context) resource.Resource[string] {
		if atomic.AddInt64(&calls, 1) == 1 {
			return resource.Failure[string]("Something went wrong", errors.New("backend down"))
		}
		return resource.Success("recovered")
	})
	ctx := context.Background()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsError() },
		2*time.Second, 10*time.Millisecond)

	c.Retry(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "recovered", c.State().MustData())
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestResetReturnsToIdleWithoutReloading(t *testing.T) {
	var calls int64
	c := New(func(ctx context.Context) resource.Resource[int] {
		atomic.AddInt64(&calls, 1)
		return resource.Success(1)
	})
	ctx := context.Background()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	c.Reset()
	assert.True(t, c.State().IsIdle())
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestRefreshSkipsTheLoadingState(t *testing.T) {
	var calls int64
	c := New(func(ctx context.Context) resource.Resource[int] {
		return resource.Success(int(atomic.AddInt64(&calls, 1)))
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watch := c.Watch(ctx)
	assert.True(t, recv(t, watch).IsIdle())

	c.Start(ctx)
	assert.True(t, recv(t, watch).IsLoading())
	require.True(t, recv(t, watch).IsSuccess())

	c.Refresh(ctx)
	got := recv(t, watch)
	require.True(t, got.IsSuccess(), "refresh must not publish Loading")
	assert.Equal(t, 2, got.MustData())
}

func TestWatchReplaysTheCurrentValueFirst(t *testing.T) {
	c := New(func(ctx context.Context) resource.Resource[string] {
		return resource.Success("here")
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	late := c.Watch(ctx)
	got := recv(t, late)
	require.True(t, got.IsSuccess())
	assert.Equal(t, "here", got.MustData())
}

func TestWatchClosesWhenTheContextEnds(t *testing.T) {
	c := New(func(ctx context.Context) resource.Resource[int] {
		return resource.Success(7)
	})
	ctx, cancel := context.WithCancel(context.Background())

	watch := c.Watch(ctx)
	recv(t, watch)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-watch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
