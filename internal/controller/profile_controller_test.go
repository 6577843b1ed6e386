package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "sparin/internal/adapter/repository"
	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/session"
	"sparin/internal/store/memstore"
)

func TestProfileControllerSignalsOnboardingBeforeAProfileExists(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	c := NewProfileController(users)
	ctx := context.Background()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsError() },
		2*time.Second, 10*time.Millisecond)
	assert.True(t, c.NeedsOnboarding())

	res := users.CreateProfile(ctx, &entity.User{
		ID:       "alice",
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.True(t, res.IsSuccess(), res.Message())

	c.Retry(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, c.NeedsOnboarding())
	assert.Equal(t, "alice", c.State().MustData().Username)
}

func TestProfileControllerSaveRefreshesTheScreenState(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	c := NewProfileController(users)
	ctx := context.Background()

	require.True(t, users.CreateProfile(ctx, &entity.User{
		ID:       "alice",
		Username: "alice",
	}).IsSuccess())

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	res := c.Save(ctx, "alice", repository.UpdateProfileInput{Bio: "weekend footballer"})
	require.True(t, res.IsSuccess(), res.Message())

	assert.Eventually(t, func() bool {
		state := c.State()
		return state.IsSuccess() && state.MustData().Bio == "weekend footballer"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestProfileControllerSaveFailureLeavesTheStateAlone(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	c := NewProfileController(users)
	ctx := context.Background()

	require.True(t, users.CreateProfile(ctx, &entity.User{
		ID:       "alice",
		Username: "alice",
	}).IsSuccess())

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	res := c.Save(ctx, "ghost", repository.UpdateProfileInput{Bio: "nope"})
	assert.True(t, res.IsError())
	assert.True(t, c.State().IsSuccess())
	assert.Empty(t, c.State().MustData().Bio)
}
