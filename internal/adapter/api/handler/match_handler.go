package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/websocket"
)

type MatchHandler struct {
	matchRepo repository.MatchRepository
	wsManager *websocket.Manager
}

func NewMatchHandler(matchRepo repository.MatchRepository, wsManager *websocket.Manager) *MatchHandler {
	return &MatchHandler{
		matchRepo: matchRepo,
		wsManager: wsManager,
	}
}

type swipeRequest struct {
	TargetID string `json:"targetId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=like pass"`
}

// Swipe records the caller's decision. When it completes a mutual like,
// both sides get a match push.
func (h *MatchHandler) Swipe(c echo.Context) error {
	var req swipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	uid := currentUID(c)
	if req.TargetID == uid {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot swipe on yourself")
	}

	result := h.matchRepo.RecordSwipe(c.Request().Context(), uid, req.TargetID, req.Action)

	if swipe, ok := result.Data(); ok && swipe.Match != nil {
		h.wsManager.SendEventToUser(swipe.Match.UserA, "match.created", swipe.Match)
		h.wsManager.SendEventToUser(swipe.Match.UserB, "match.created", swipe.Match)
	}

	return respond(c, result)
}

func (h *MatchHandler) ListMatches(c echo.Context) error {
	return respond(c, h.matchRepo.ListForUser(c.Request().Context(), currentUID(c)))
}
