package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/store/memstore"
)

func TestMatchIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, MatchID("alice", "bob"), MatchID("bob", "alice"))
	assert.Equal(t, "match_alice_bob", MatchID("bob", "alice"))
}

func TestRecordSwipeStoresDecision(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)
	ctx := context.Background()

	res := repo.RecordSwipe(ctx, "alice", "bob", entity.SwipeLike)
	require.True(t, res.IsSuccess(), res.Message())
	result := res.MustData()

	assert.Equal(t, entity.SwipeLike, result.Swipe.Action)
	assert.Nil(t, result.Match)

	swipe := repo.GetSwipe(ctx, "alice", "bob")
	require.True(t, swipe.IsSuccess())
	assert.Equal(t, "bob", swipe.MustData().ToUserID)
}

func TestMutualLikeCreatesMatch(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)
	ctx := context.Background()

	require.True(t, repo.RecordSwipe(ctx, "bob", "alice", entity.SwipeLike).IsSuccess())

	res := repo.RecordSwipe(ctx, "alice", "bob", entity.SwipeLike)
	require.True(t, res.IsSuccess())
	result := res.MustData()

	require.NotNil(t, result.Match)
	assert.Equal(t, "alice", result.Match.UserA)
	assert.Equal(t, "bob", result.Match.UserB)

	// Both sides see the match.
	for _, uid := range []string{"alice", "bob"} {
		matches := repo.ListForUser(ctx, uid)
		require.True(t, matches.IsSuccess())
		assert.Len(t, matches.MustData(), 1)
	}
}

func TestPassDoesNotCreateMatch(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)
	ctx := context.Background()

	require.True(t, repo.RecordSwipe(ctx, "bob", "alice", entity.SwipeLike).IsSuccess())

	res := repo.RecordSwipe(ctx, "alice", "bob", entity.SwipePass)
	require.True(t, res.IsSuccess())
	assert.Nil(t, res.MustData().Match)

	matches := repo.ListForUser(ctx, "alice")
	require.True(t, matches.IsSuccess())
	assert.Empty(t, matches.MustData())
}

func TestReSwipeIsANoOp(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)
	ctx := context.Background()

	first := repo.RecordSwipe(ctx, "alice", "bob", entity.SwipePass)
	require.True(t, first.IsSuccess())

	// A later like cannot overwrite the recorded pass.
	second := repo.RecordSwipe(ctx, "alice", "bob", entity.SwipeLike)
	require.True(t, second.IsSuccess())
	assert.Equal(t, entity.SwipePass, second.MustData().Swipe.Action)
	assert.Nil(t, second.MustData().Match)
}

func TestSwipeOnSelfFails(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)

	res := repo.RecordSwipe(context.Background(), "alice", "alice", entity.SwipeLike)
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}

func TestUnknownSwipeActionFails(t *testing.T) {
	s := memstore.New()
	repo := NewStoreMatchRepository(s)

	res := repo.RecordSwipe(context.Background(), "alice", "bob", "superlike")
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}
