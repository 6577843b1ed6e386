package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/session"
	"sparin/internal/store/memstore"
)

func TestCreateProfileRequiresID(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})

	res := repo.CreateProfile(context.Background(), &entity.User{Username: "alice"})
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}

func TestCreateProfileInitializesCollections(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})

	res := repo.CreateProfile(context.Background(), &entity.User{
		ID:       "alice",
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.True(t, res.IsSuccess())
	created := res.MustData()
	assert.NotNil(t, created.FavoriteSports)
	assert.NotNil(t, created.JoinedCommunities)
	assert.NotNil(t, created.JoinedRooms)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestGetCurrentProfileWithoutIdentity(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})

	res := repo.GetCurrentProfile(context.Background())
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("UNAUTHENTICATED"))
}

func TestGetCurrentProfileBeforeOnboardingIsNotFound(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})
	ctx := session.WithUserID(context.Background(), "alice")

	// Authenticated, but no profile document yet: the first-run signal.
	res := repo.GetCurrentProfile(ctx)
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("NOT_FOUND"))
}

func TestGetCurrentProfileAfterOnboarding(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})
	seedUser(t, s, "alice")
	ctx := session.WithUserID(context.Background(), "alice")

	res := repo.GetCurrentProfile(ctx)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "alice", res.MustData().ID)
}

func TestUpdateProfileMergesOnlyProvidedFields(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})
	ctx := context.Background()
	seedUser(t, s, "alice")

	res := repo.UpdateProfile(ctx, "alice", repository.UpdateProfileInput{
		Bio:        "weekend striker",
		SkillLevel: "intermediate",
	})
	require.True(t, res.IsSuccess())
	updated := res.MustData()

	assert.Equal(t, "weekend striker", updated.Bio)
	assert.Equal(t, "intermediate", updated.SkillLevel)
	// Untouched fields survive the merge.
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, []string{"futsal"}, updated.FavoriteSports)
}

func TestUpdateProfileMissingUserIsNotFound(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})

	res := repo.UpdateProfile(context.Background(), "ghost", repository.UpdateProfileInput{Bio: "x"})
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("NOT_FOUND"))
}

func TestDeleteProfileThenGetIsNotFound(t *testing.T) {
	s := memstore.New()
	repo := NewStoreUserRepository(s, session.ContextResolver{})
	ctx := context.Background()
	seedUser(t, s, "alice")

	require.True(t, repo.DeleteProfile(ctx, "alice").IsSuccess())

	res := repo.GetByID(ctx, "alice")
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("NOT_FOUND"))
}
