package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/websocket"
)

type ChatHandler struct {
	chatRepo  repository.ChatRepository
	wsManager *websocket.Manager
}

func NewChatHandler(chatRepo repository.ChatRepository, wsManager *websocket.Manager) *ChatHandler {
	return &ChatHandler{
		chatRepo:  chatRepo,
		wsManager: wsManager,
	}
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	return respond(c, h.chatRepo.ListChatsForUser(c.Request().Context(), currentUID(c)))
}

// EnsureDirectChat opens (or returns) the one direct chat between the
// caller and the given user.
func (h *ChatHandler) EnsureDirectChat(c echo.Context) error {
	var req struct {
		UserID string `json:"userId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return respond(c, h.chatRepo.EnsureDirectChat(c.Request().Context(), currentUID(c), req.UserID))
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	return respond(c, h.chatRepo.GetChat(c.Request().Context(), c.Param("id")))
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	return respond(c, h.chatRepo.ListMessages(c.Request().Context(), c.Param("id")))
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// SendMessage persists the message and pushes it to the other
// participants' sockets.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chatID := c.Param("id")
	senderID := currentUID(c)

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  req.Content,
	}

	result := h.chatRepo.SendMessage(c.Request().Context(), chatID, message)

	if sent, ok := result.Data(); ok {
		if chat, ok := h.chatRepo.GetChat(c.Request().Context(), chatID).Data(); ok {
			for _, participant := range chat.Participants {
				if participant != senderID {
					h.wsManager.SendEventToUser(participant, "chat.message", sent)
				}
			}
		}
	}

	return respondCreated(c, result)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	return respond(c, h.chatRepo.MarkRead(c.Request().Context(), c.Param("id"), c.Param("messageId"), currentUID(c)))
}
