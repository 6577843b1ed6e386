package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/store"
	"sparin/internal/store/memstore"
)

func recvSnapshot[T any](t *testing.T, sub *store.Subscription[T]) store.Snapshot[T] {
	t.Helper()
	select {
	case snap, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return store.Snapshot[T]{}
	}
}

func recvDocSnapshot[T any](t *testing.T, sub *store.DocSubscription[T]) store.DocSnapshot[T] {
	t.Helper()
	select {
	case snap, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return store.DocSnapshot[T]{}
	}
}

func TestObserveCollectionEmitsInitialSnapshot(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "ball"}))

	sub, err := store.ObserveCollection[gadget](ctx, s, "gadgets")
	require.NoError(t, err)
	defer sub.Cancel()

	snap := recvSnapshot(t, sub)
	require.Len(t, snap.Docs, 1)
	assert.Equal(t, "g1", snap.Docs[0].ID)
	assert.Zero(t, snap.Skipped)
}

func TestObserveCollectionEmitsOnePerCommitInOrder(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	sub, err := store.ObserveCollection[gadget](ctx, s, "gadgets")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, recvSnapshot(t, sub).Docs)

	const writes = 5
	for i := 0; i < writes; i++ {
		require.NoError(t, store.CreateWithID(ctx, s, "gadgets", string(rune('a'+i)), &gadget{Name: "g"}))
	}

	// One snapshot per commit, sizes strictly increasing.
	for i := 1; i <= writes; i++ {
		snap := recvSnapshot(t, sub)
		assert.Len(t, snap.Docs, i)
	}
}

func TestObserveCollectionCountsSkippedDocuments(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	s.Seed("gadgets", "bad", map[string]interface{}{"count": "not-a-number"})
	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "good", &gadget{Name: "ball"}))

	sub, err := store.ObserveCollection[gadget](ctx, s, "gadgets")
	require.NoError(t, err)
	defer sub.Cancel()

	snap := recvSnapshot(t, sub)
	require.Len(t, snap.Docs, 1)
	assert.Equal(t, "good", snap.Docs[0].ID)
	assert.Equal(t, 1, snap.Skipped)
}

func TestObserveCollectionCancelClosesStreamCleanly(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	sub, err := store.ObserveCollection[gadget](ctx, s, "gadgets")
	require.NoError(t, err)

	recvSnapshot(t, sub)
	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	for range sub.C() {
	}
	assert.NoError(t, sub.Err())
}

func TestObserveCollectionDriverFaultTerminatesStream(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	sub, err := store.ObserveCollection[gadget](ctx, s, "gadgets")
	require.NoError(t, err)

	recvSnapshot(t, sub)
	s.Fail(assert.AnError)

	for range sub.C() {
	}
	assert.Equal(t, assert.AnError, sub.Err())
}

func TestObserveDocumentTracksLifecycle(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	sub, err := store.ObserveDocument[gadget](ctx, s, "gadgets", "g1")
	require.NoError(t, err)
	defer sub.Cancel()

	first := recvDocSnapshot(t, sub)
	assert.False(t, first.Exists)
	assert.Nil(t, first.Doc)

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "ball"}))
	created := recvDocSnapshot(t, sub)
	require.True(t, created.Exists)
	assert.Equal(t, "ball", created.Doc.Name)

	require.NoError(t, store.Delete(ctx, s, "gadgets", "g1"))
	deleted := recvDocSnapshot(t, sub)
	assert.False(t, deleted.Exists)
	assert.Nil(t, deleted.Doc)
}

func TestFeedDeliversInPushOrder(t *testing.T) {
	f := store.NewFeed[int]()

	for i := 0; i < 100; i++ {
		f.Push(i)
	}
	f.Close(nil)

	var got []int
	for v := range f.C() {
		got = append(got, v)
	}

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
	assert.NoError(t, f.Err())
}

func TestFeedCancelStopsDeliveryImmediately(t *testing.T) {
	f := store.NewFeed[int]()

	for i := 0; i < 10; i++ {
		f.Push(i)
	}
	f.Cancel()

	// Drain whatever was in flight; the channel must close.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-f.C():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("feed did not close after cancel")
		}
	}
}

func TestFeedPushAfterCloseIsIgnored(t *testing.T) {
	f := store.NewFeed[int]()
	f.Push(1)
	f.Close(nil)
	f.Push(2)

	var got []int
	for v := range f.C() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1}, got)
}
