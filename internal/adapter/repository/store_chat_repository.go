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

type storeChatRepository struct {
	driver store.Driver
}

func NewStoreChatRepository(driver store.Driver) repository.ChatRepository {
	return &storeChatRepository{driver: driver}
}

// DirectChatID derives the document id of the direct chat between two
// users from their sorted ids, so a pair always maps to one chat.
func DirectChatID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "dm_" + userA + "_" + userB
}

func (r *storeChatRepository) EnsureDirectChat(ctx context.Context, userA, userB string) resource.Resource[*entity.Chat] {
	if userA == userB {
		return resource.FailureFromErr[*entity.Chat](errors.BadRequest("Cannot open a chat with yourself", nil))
	}

	chatID := DirectChatID(userA, userB)
	var chat *entity.Chat
	// Existence check and creation commit together, so two racing
	// openers converge on one chat document.
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		chat, err = store.TxGet[entity.Chat](b, entity.CollectionChats, chatID)
		if err != nil {
			return err
		}
		if chat != nil {
			return nil
		}

		now := time.Now()
		participants := []string{userA, userB}
		sort.Strings(participants)
		chat = &entity.Chat{
			ID:           chatID,
			Participants: participants,
			Type:         "direct",
			UnreadCount:  map[string]int{userA: 0, userB: 0},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return b.SetRecord(entity.CollectionChats, chatID, chat)
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Chat](batchErr("open direct chat", err))
	}
	return resource.Success(chat)
}

func (r *storeChatRepository) GetChat(ctx context.Context, chatID string) resource.Resource[*entity.Chat] {
	chat, err := store.Get[entity.Chat](ctx, r.driver, entity.CollectionChats, chatID)
	if err != nil {
		return resource.FailureFromErr[*entity.Chat](err)
	}
	if chat == nil {
		return resource.FailureFromErr[*entity.Chat](errors.NotFound("Chat", nil))
	}
	return resource.Success(chat)
}

func (r *storeChatRepository) ListChatsForUser(ctx context.Context, userID string) resource.Resource[[]entity.Chat] {
	// Participant lists carry at most a handful of ids, so membership is
	// filtered here instead of relying on array queries.
	chats, err := store.List[entity.Chat](ctx, r.driver, entity.CollectionChats)
	if err != nil {
		return resource.FailureFromErr[[]entity.Chat](err)
	}
	mine := make([]entity.Chat, 0, len(chats))
	for _, chat := range chats {
		if chat.HasParticipant(userID) {
			mine = append(mine, chat)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].LastMessageAt.After(mine[j].LastMessageAt)
	})
	return resource.Success(mine)
}

func (r *storeChatRepository) SendMessage(ctx context.Context, chatID string, message *entity.Message) resource.Resource[*entity.Message] {
	now := time.Now()
	message.ChatID = chatID
	message.CreatedAt = now
	if message.ReadBy == nil {
		message.ReadBy = []string{message.SenderID}
	}

	// Message write and chat denormalization commit together, against
	// the unread counters read in the same commit.
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		chat, err := store.TxGet[entity.Chat](b, entity.CollectionChats, chatID)
		if err != nil {
			return err
		}
		if chat == nil {
			return errors.NotFound("Chat", nil)
		}
		if !chat.HasParticipant(message.SenderID) {
			return errors.Forbidden("Not a participant of this chat", nil)
		}

		unread := map[string]int{}
		for k, v := range chat.UnreadCount {
			unread[k] = v
		}
		for _, p := range chat.Participants {
			if p != message.SenderID {
				unread[p]++
			}
		}

		if err := b.SetRecord(entity.MessagesCollection(chatID), newDocumentID(), message); err != nil {
			return err
		}
		b.Update(entity.CollectionChats, chatID, map[string]interface{}{
			"lastMessage":   message.Content,
			"lastMessageAt": now,
			"unreadCount":   unread,
			"updatedAt":     now,
		})
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Message](batchErr("send message", err))
	}
	return resource.Success(message)
}

func (r *storeChatRepository) ListMessages(ctx context.Context, chatID string) resource.Resource[[]entity.Message] {
	messages, err := store.List[entity.Message](ctx, r.driver, entity.MessagesCollection(chatID))
	if err != nil {
		return resource.FailureFromErr[[]entity.Message](err)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return resource.Success(messages)
}

func (r *storeChatRepository) ObserveMessages(ctx context.Context, chatID string) (*store.Subscription[entity.Message], error) {
	return store.ObserveCollection[entity.Message](ctx, r.driver, entity.MessagesCollection(chatID))
}

func (r *storeChatRepository) MarkRead(ctx context.Context, chatID, messageID, userID string) resource.Resource[struct{}] {
	collection := entity.MessagesCollection(chatID)
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		message, err := store.TxGet[entity.Message](b, collection, messageID)
		if err != nil {
			return err
		}
		if message == nil {
			return errors.NotFound("Message", nil)
		}
		if message.ReadByUser(userID) {
			return nil
		}

		chat, err := store.TxGet[entity.Chat](b, entity.CollectionChats, chatID)
		if err != nil {
			return err
		}
		if chat == nil {
			return errors.NotFound("Chat", nil)
		}

		readBy := append(append([]string{}, message.ReadBy...), userID)
		unread := map[string]int{}
		for k, v := range chat.UnreadCount {
			unread[k] = v
		}
		unread[userID] = 0

		b.Update(collection, messageID, map[string]interface{}{
			"readBy": readBy,
		})
		b.Update(entity.CollectionChats, chatID, map[string]interface{}{
			"unreadCount": unread,
		})
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[struct{}](batchErr("mark message read", err))
	}
	return resource.Success(struct{}{})
}
