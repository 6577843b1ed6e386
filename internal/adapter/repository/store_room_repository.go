package repository

import (
	"context"
	"sort"
	"time"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
)

type storeRoomRepository struct {
	driver store.Driver
}

func NewStoreRoomRepository(driver store.Driver) repository.RoomRepository {
	return &storeRoomRepository{driver: driver}
}

func (r *storeRoomRepository) List(ctx context.Context) resource.Resource[[]entity.Room] {
	rooms, err := store.List[entity.Room](ctx, r.driver, entity.CollectionRooms)
	if err != nil {
		return resource.FailureFromErr[[]entity.Room](err)
	}
	sortRooms(rooms)
	return resource.Success(rooms)
}

func (r *storeRoomRepository) ListBySport(ctx context.Context, sport string) resource.Resource[[]entity.Room] {
	rooms, err := store.Query[entity.Room](ctx, r.driver, entity.CollectionRooms, "sport", sport)
	if err != nil {
		return resource.FailureFromErr[[]entity.Room](err)
	}
	sortRooms(rooms)
	return resource.Success(rooms)
}

func (r *storeRoomRepository) Get(ctx context.Context, id string) resource.Resource[*entity.Room] {
	room, err := store.Get[entity.Room](ctx, r.driver, entity.CollectionRooms, id)
	if err != nil {
		return resource.FailureFromErr[*entity.Room](err)
	}
	if room == nil {
		return resource.FailureFromErr[*entity.Room](errors.NotFound("Room", nil))
	}
	return resource.Success(room)
}

func (r *storeRoomRepository) Create(ctx context.Context, room *entity.Room) resource.Resource[*entity.Room] {
	if room.MaxPlayers <= 0 {
		return resource.FailureFromErr[*entity.Room](errors.BadRequest("Room capacity must be positive", nil))
	}

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	room.Status = "open"
	if room.Players == nil {
		room.Players = []string{}
	}
	// The host always plays.
	if room.HostID != "" && !room.HasPlayer(room.HostID) {
		room.Players = append(room.Players, room.HostID)
	}
	room.CurrentPlayers = len(room.Players)

	if _, err := store.Create(ctx, r.driver, entity.CollectionRooms, room); err != nil {
		return resource.FailureFromErr[*entity.Room](err)
	}
	return resource.Success(room)
}

func (r *storeRoomRepository) Delete(ctx context.Context, id string) resource.Resource[struct{}] {
	if err := store.Delete(ctx, r.driver, entity.CollectionRooms, id); err != nil {
		return resource.FailureFromErr[struct{}](err)
	}
	return resource.Success(struct{}{})
}

func (r *storeRoomRepository) Observe(ctx context.Context) (*store.Subscription[entity.Room], error) {
	return store.ObserveCollection[entity.Room](ctx, r.driver, entity.CollectionRooms)
}

func (r *storeRoomRepository) ObserveRoom(ctx context.Context, id string) (*store.DocSubscription[entity.Room], error) {
	return store.ObserveDocument[entity.Room](ctx, r.driver, entity.CollectionRooms, id)
}

func (r *storeRoomRepository) Join(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room] {
	var room *entity.Room
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		room, err = store.TxGet[entity.Room](b, entity.CollectionRooms, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return errors.NotFound("Room", nil)
		}
		if room.HasPlayer(userID) {
			return nil
		}
		if room.IsFull() {
			return errors.Conflict("Room is full")
		}

		user, err := store.TxGet[entity.User](b, entity.CollectionUsers, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.NotFound("User", nil)
		}

		players := append(append([]string{}, room.Players...), userID)
		joined := user.JoinedRooms
		if !contains(joined, roomID) {
			joined = append(append([]string{}, joined...), roomID)
		}
		status := "open"
		if room.MaxPlayers > 0 && len(players) >= room.MaxPlayers {
			status = "full"
		}

		b.Update(entity.CollectionRooms, roomID, map[string]interface{}{
			"players":        players,
			"currentPlayers": len(players),
			"status":         status,
			"updatedAt":      time.Now(),
		})
		b.Update(entity.CollectionUsers, userID, map[string]interface{}{
			"joinedRooms": joined,
			"updatedAt":   time.Now(),
		})
		room.Players = players
		room.CurrentPlayers = len(players)
		room.Status = status
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Room](batchErr("join room", err))
	}
	return resource.Success(room)
}

func (r *storeRoomRepository) Leave(ctx context.Context, roomID, userID string) resource.Resource[*entity.Room] {
	var room *entity.Room
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		room, err = store.TxGet[entity.Room](b, entity.CollectionRooms, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return errors.NotFound("Room", nil)
		}
		if !room.HasPlayer(userID) {
			return nil
		}

		user, err := store.TxGet[entity.User](b, entity.CollectionUsers, userID)
		if err != nil {
			return err
		}

		players := remove(room.Players, userID)
		status := room.Status
		if status == "full" && (room.MaxPlayers <= 0 || len(players) < room.MaxPlayers) {
			status = "open"
		}

		b.Update(entity.CollectionRooms, roomID, map[string]interface{}{
			"players":        players,
			"currentPlayers": len(players),
			"status":         status,
			"updatedAt":      time.Now(),
		})
		if user != nil {
			b.Update(entity.CollectionUsers, userID, map[string]interface{}{
				"joinedRooms": remove(user.JoinedRooms, roomID),
				"updatedAt":   time.Now(),
			})
		}
		room.Players = players
		room.CurrentPlayers = len(players)
		room.Status = status
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Room](batchErr("leave room", err))
	}
	return resource.Success(room)
}

func sortRooms(rooms []entity.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].ScheduledAt.Before(rooms[j].ScheduledAt)
	})
}
