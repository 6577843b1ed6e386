package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/websocket"
)

type RoomHandler struct {
	roomRepo  repository.RoomRepository
	wsManager *websocket.Manager
}

func NewRoomHandler(roomRepo repository.RoomRepository, wsManager *websocket.Manager) *RoomHandler {
	return &RoomHandler{
		roomRepo:  roomRepo,
		wsManager: wsManager,
	}
}

func (h *RoomHandler) List(c echo.Context) error {
	if sport := c.QueryParam("sport"); sport != "" {
		return respond(c, h.roomRepo.ListBySport(c.Request().Context(), sport))
	}
	return respond(c, h.roomRepo.List(c.Request().Context()))
}

func (h *RoomHandler) Get(c echo.Context) error {
	return respond(c, h.roomRepo.Get(c.Request().Context(), c.Param("id")))
}

type createRoomRequest struct {
	Name        string    `json:"name" validate:"required,min=3"`
	Sport       string    `json:"sport" validate:"required"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	MaxPlayers  int       `json:"maxPlayers" validate:"required,min=2,max=64"`
}

func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room := &entity.Room{
		Name:        req.Name,
		Sport:       req.Sport,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
		MaxPlayers:  req.MaxPlayers,
		HostID:      currentUID(c),
	}

	return respondCreated(c, h.roomRepo.Create(c.Request().Context(), room))
}

func (h *RoomHandler) Delete(c echo.Context) error {
	existing := h.roomRepo.Get(c.Request().Context(), c.Param("id"))
	if room, ok := existing.Data(); ok && room.HostID != currentUID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the host can delete a room")
	}
	return respond(c, h.roomRepo.Delete(c.Request().Context(), c.Param("id")))
}

// Join adds the caller and notifies the host over the push socket.
func (h *RoomHandler) Join(c echo.Context) error {
	result := h.roomRepo.Join(c.Request().Context(), c.Param("id"), currentUID(c))
	if room, ok := result.Data(); ok && room.HostID != currentUID(c) {
		h.wsManager.SendEventToUser(room.HostID, "room.player_joined", room)
	}
	return respond(c, result)
}

func (h *RoomHandler) Leave(c echo.Context) error {
	result := h.roomRepo.Leave(c.Request().Context(), c.Param("id"), currentUID(c))
	if room, ok := result.Data(); ok && room.HostID != currentUID(c) {
		h.wsManager.SendEventToUser(room.HostID, "room.player_left", room)
	}
	return respond(c, result)
}
