package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

type ChatRepository interface {
	// EnsureDirectChat returns the direct chat between the two users,
	// creating it on first contact. The chat id is derived from the
	// sorted pair so a pair maps to exactly one document.
	EnsureDirectChat(ctx context.Context, userA, userB string) resource.Resource[*entity.Chat]

	GetChat(ctx context.Context, chatID string) resource.Resource[*entity.Chat]
	ListChatsForUser(ctx context.Context, userID string) resource.Resource[[]entity.Chat]

	// SendMessage writes the message and the chat's lastMessage
	// denormalization in one atomic batch.
	SendMessage(ctx context.Context, chatID string, message *entity.Message) resource.Resource[*entity.Message]

	ListMessages(ctx context.Context, chatID string) resource.Resource[[]entity.Message]
	ObserveMessages(ctx context.Context, chatID string) (*store.Subscription[entity.Message], error)

	// MarkRead appends userID to the message's readBy and clears the
	// user's unread counter. Idempotent.
	MarkRead(ctx context.Context, chatID, messageID, userID string) resource.Resource[struct{}]
}
