package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store/memstore"
)

func newRoom(t *testing.T, repo repository.RoomRepository, hostID string, maxPlayers int) *entity.Room {
	t.Helper()
	res := repo.Create(context.Background(), &entity.Room{
		Name:        "Evening futsal",
		Sport:       "futsal",
		HostID:      hostID,
		MaxPlayers:  maxPlayers,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.True(t, res.IsSuccess(), res.Message())
	return res.MustData()
}

func TestRoomCreateSeatsTheHost(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	seedUser(t, s, "host")

	room := newRoom(t, repo, "host", 4)

	assert.Equal(t, "open", room.Status)
	assert.Equal(t, []string{"host"}, room.Players)
	assert.Equal(t, 1, room.CurrentPlayers)
}

func TestRoomCreateRejectsNonPositiveCapacity(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)

	res := repo.Create(context.Background(), &entity.Room{Name: "bad", MaxPlayers: 0})
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}

func TestRoomJoinFillsAndFlipsStatus(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")
	seedUser(t, s, "bob")

	room := newRoom(t, repo, "host", 2)

	res := repo.Join(ctx, room.ID, "bob")
	require.True(t, res.IsSuccess(), res.Message())
	full := res.MustData()

	assert.Equal(t, "full", full.Status)
	assert.Equal(t, 2, full.CurrentPlayers)
	assert.Equal(t, len(full.Players), full.CurrentPlayers)

	user := getUser(t, s, "bob")
	assert.Contains(t, user.JoinedRooms, room.ID)
}

func TestRoomJoinFullRoomConflicts(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")
	seedUser(t, s, "bob")
	seedUser(t, s, "carol")

	room := newRoom(t, repo, "host", 2)
	require.True(t, repo.Join(ctx, room.ID, "bob").IsSuccess())

	res := repo.Join(ctx, room.ID, "carol")
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("CONFLICT"))
}

func TestRoomJoinTwiceIsANoOpEvenWhenFull(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")
	seedUser(t, s, "bob")

	room := newRoom(t, repo, "host", 2)
	require.True(t, repo.Join(ctx, room.ID, "bob").IsSuccess())

	// The member check runs before the capacity check.
	res := repo.Join(ctx, room.ID, "bob")
	require.True(t, res.IsSuccess())
	assert.Equal(t, 2, res.MustData().CurrentPlayers)
}

func TestRoomLeaveReopensAFullRoom(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")
	seedUser(t, s, "bob")

	room := newRoom(t, repo, "host", 2)
	require.True(t, repo.Join(ctx, room.ID, "bob").IsSuccess())

	res := repo.Leave(ctx, room.ID, "bob")
	require.True(t, res.IsSuccess())
	left := res.MustData()

	assert.Equal(t, "open", left.Status)
	assert.Equal(t, 1, left.CurrentPlayers)
	assert.NotContains(t, left.Players, "bob")

	user := getUser(t, s, "bob")
	assert.NotContains(t, user.JoinedRooms, room.ID)
}

func TestRoomListBySportFilters(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")

	newRoom(t, repo, "host", 4)
	basket := repo.Create(ctx, &entity.Room{
		Name:        "Basketball run",
		Sport:       "basketball",
		HostID:      "host",
		MaxPlayers:  10,
		ScheduledAt: time.Now(),
	})
	require.True(t, basket.IsSuccess())

	res := repo.ListBySport(ctx, "basketball")
	require.True(t, res.IsSuccess())
	require.Len(t, res.MustData(), 1)
	assert.Equal(t, "basketball", res.MustData()[0].Sport)
}

func TestRoomListSortsBySchedule(t *testing.T) {
	s := memstore.New()
	repo := NewStoreRoomRepository(s)
	ctx := context.Background()
	seedUser(t, s, "host")

	later := repo.Create(ctx, &entity.Room{
		Name: "later", Sport: "futsal", HostID: "host", MaxPlayers: 4,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}).MustData()
	sooner := repo.Create(ctx, &entity.Room{
		Name: "sooner", Sport: "futsal", HostID: "host", MaxPlayers: 4,
		ScheduledAt: time.Now().Add(1 * time.Hour),
	}).MustData()

	res := repo.List(ctx)
	require.True(t, res.IsSuccess())
	rooms := res.MustData()
	require.Len(t, rooms, 2)
	assert.Equal(t, sooner.ID, rooms[0].ID)
	assert.Equal(t, later.ID, rooms[1].ID)
}
