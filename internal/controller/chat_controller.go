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

// ChatController owns one conversation screen: the live message stream
// plus the send and read actions for the local user.
type ChatController struct {
	chats  repository.ChatRepository
	chatID string
	userID string
	state  *State[[]entity.Message]

	mu        sync.Mutex
	sub       *store.Subscription[entity.Message]
	startOnce sync.Once
}

func NewChatController(chats repository.ChatRepository, chatID, userID string) *ChatController {
	return &ChatController{
		chats:  chats,
		chatID: chatID,
		userID: userID,
		state:  NewState[[]entity.Message](),
	}
}

func (c *ChatController) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.subscribe(ctx)
	})
}

func (c *ChatController) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	c.mu.Unlock()
	c.subscribe(ctx)
}

func (c *ChatController) Reset() {
	c.Close()
	c.state.Publish(resource.Idle[[]entity.Message]())
}

func (c *ChatController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
}

func (c *ChatController) subscribe(ctx context.Context) {
	c.state.Publish(resource.Loading[[]entity.Message]())

	sub, err := c.chats.ObserveMessages(ctx, c.chatID)
	if err != nil {
		c.state.Publish(resource.FailureFromErr[[]entity.Message](err))
		return
	}

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	go func() {
		for snap := range sub.C() {
			// Snapshots carry no ordering; the screen wants chronological.
			messages := snap.Docs
			sort.Slice(messages, func(i, j int) bool {
				return messages[i].CreatedAt.Before(messages[j].CreatedAt)
			})
			c.state.Publish(resource.Success(messages))
		}
		if err := sub.Err(); err != nil {
			c.state.Publish(resource.Failure[[]entity.Message]("Live chat updates interrupted", err))
		}
	}()
}

// Send writes the message; the subscription delivers it back into state.
func (c *ChatController) Send(ctx context.Context, content string) resource.Resource[*entity.Message] {
	return c.chats.SendMessage(ctx, c.chatID, &entity.Message{
		SenderID: c.userID,
		Content:  content,
	})
}

func (c *ChatController) MarkRead(ctx context.Context, messageID string) resource.Resource[struct{}] {
	return c.chats.MarkRead(ctx, c.chatID, messageID, c.userID)
}

func (c *ChatController) State() resource.Resource[[]entity.Message] {
	return c.state.Get()
}

func (c *ChatController) Watch(ctx context.Context) <-chan resource.Resource[[]entity.Message] {
	return c.state.Watch(ctx)
}
