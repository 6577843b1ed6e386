package controller

import (
	"context"
	"sort"
	"sync"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

// RoomListController owns the live room discovery screen. It holds one
// collection subscription and republishes every snapshot; the stream ends
// with an Error state when the store faults, terminal until Retry.
type RoomListController struct {
	rooms repository.RoomRepository
	state *State[[]entity.Room]

	mu        sync.Mutex
	sub       *store.Subscription[entity.Room]
	startOnce sync.Once
}

func NewRoomListController(rooms repository.RoomRepository) *RoomListController {
	return &RoomListController{
		rooms: rooms,
		state: NewState[[]entity.Room](),
	}
}

func (c *RoomListController) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.subscribe(ctx)
	})
}

// Retry tears down the failed subscription and registers a fresh one.
func (c *RoomListController) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	c.mu.Unlock()
	c.subscribe(ctx)
}

func (c *RoomListController) Reset() {
	c.Close()
	c.state.Publish(resource.Idle[[]entity.Room]())
}

// Close releases the live registration; safe to call on every exit path.
func (c *RoomListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
}

func (c *RoomListController) subscribe(ctx context.Context) {
	c.state.Publish(resource.Loading[[]entity.Room]())

	sub, err := c.rooms.Observe(ctx)
	if err != nil {
		c.state.Publish(resource.FailureFromErr[[]entity.Room](err))
		return
	}

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	go func() {
		for snap := range sub.C() {
			// Soonest game first, matching the one-shot listing.
			rooms := snap.Docs
			sort.Slice(rooms, func(i, j int) bool {
				return rooms[i].ScheduledAt.Before(rooms[j].ScheduledAt)
			})
			c.state.Publish(resource.Success(rooms))
		}
		if err := sub.Err(); err != nil {
			c.state.Publish(resource.Failure[[]entity.Room]("Live room updates interrupted", err))
		}
	}()
}

func (c *RoomListController) Join(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room] {
	// The subscription picks up the committed change; no local patch.
	return c.rooms.Join(ctx, roomID, userID)
}

func (c *RoomListController) Leave(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room] {
	return c.rooms.Leave(ctx, roomID, userID)
}

func (c *RoomListController) State() resource.Resource[[]entity.Room] {
	return c.state.Get()
}

func (c *RoomListController) Watch(ctx context.Context) <-chan resource.Resource[[]entity.Room] {
	return c.state.Watch(ctx)
}
