package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

type RoomRepository interface {
	List(ctx context.Context) resource.Resource[[]entity.Room]
	ListBySport(ctx context.Context, sport string) resource.Resource[[]entity.Room]
	Get(ctx context.Context, id string) resource.Resource[*entity.Room]
	Create(ctx context.Context, room *entity.Room) resource.Resource[*entity.Room]
	Delete(ctx context.Context, id string) resource.Resource[struct{}]
	Observe(ctx context.Context) (*store.Subscription[entity.Room], error)
	ObserveRoom(ctx context.Context, id string) (*store.DocSubscription[entity.Room], error)

	// Join adds userID to players and re-derives currentPlayers in the
	// same batch that mirrors the room onto the user document. Conflict
	// when the room is already full; joining twice is a no-op Success.
	Join(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room]

	// Leave is symmetric; leaving a room one is not in is a no-op.
	Leave(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room]
}
