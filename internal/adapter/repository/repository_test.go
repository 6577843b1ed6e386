package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/internal/store/memstore"
)

func seedUser(t *testing.T, s *memstore.Store, id string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:             id,
		Email:          id + "@example.com",
		Username:       id,
		FavoriteSports: []string{"futsal"},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, store.CreateWithID(context.Background(), s, entity.CollectionUsers, id, user))
	return user
}

func getUser(t *testing.T, s *memstore.Store, id string) *entity.User {
	t.Helper()
	user, err := store.Get[entity.User](context.Background(), s, entity.CollectionUsers, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}
