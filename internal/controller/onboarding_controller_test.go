package controller

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "sparin/internal/adapter/repository"
	"sparin/internal/domain/entity"
	"sparin/internal/infrastructure/prefs"
	"sparin/internal/session"
	"sparin/internal/store/memstore"
)

func newPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	p, err := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	return p
}

func TestOnboardingRoutesFirstRunUsersIntoTheFlow(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	c := NewOnboardingController(users, newPrefs(t))
	ctx := context.Background()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, c.State().MustData().Completed)
}

func TestOnboardingCompleteWritesProfileAndLocalFlags(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	p := newPrefs(t)
	c := NewOnboardingController(users, p)
	ctx := context.Background()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	res := c.Complete(ctx, &entity.User{
		ID:       "alice",
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.True(t, res.IsSuccess(), res.Message())

	assert.True(t, p.OnboardingCompleted("alice"))
	assert.Equal(t, "alice", p.LastKnownUserID())

	assert.Eventually(t, func() bool {
		state := c.State()
		return state.IsSuccess() && state.MustData().Completed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOnboardingCompleteFailureSkipsTheLocalFlags(t *testing.T) {
	s := memstore.New()
	users := adapter.NewStoreUserRepository(s, session.Static("alice"))
	p := newPrefs(t)
	c := NewOnboardingController(users, p)

	// No document id: the profile write is rejected before any flag flips.
	res := c.Complete(context.Background(), &entity.User{Username: "alice"})
	assert.True(t, res.IsError())
	assert.False(t, p.OnboardingCompleted("alice"))
	assert.Empty(t, p.LastKnownUserID())
}
