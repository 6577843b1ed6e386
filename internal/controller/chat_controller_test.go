package controller

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "sparin/internal/adapter/repository"
	"sparin/internal/domain/entity"
	"sparin/internal/store/memstore"
)

func TestChatControllerDeliversSentMessages(t *testing.T) {
	s := memstore.New()
	chats := adapter.NewStoreChatRepository(s)
	ctx := context.Background()

	chat := chats.EnsureDirectChat(ctx, "alice", "bob").MustData()
	c := NewChatController(chats, chat.ID, "alice")
	defer c.Close()

	c.Start(ctx)
	assert.Eventually(t, func() bool { return c.State().IsSuccess() },
		2*time.Second, 10*time.Millisecond)

	res := c.Send(ctx, "see you at the court")
	require.True(t, res.IsSuccess(), res.Message())

	assert.Eventually(t, func() bool {
		state := c.State()
		return state.IsSuccess() && len(state.MustData()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "see you at the court", c.State().MustData()[0].Content)
}

func TestChatControllerPublishesMessagesChronologically(t *testing.T) {
	s := memstore.New()
	chats := adapter.NewStoreChatRepository(s)
	ctx := context.Background()

	chat := chats.EnsureDirectChat(ctx, "alice", "bob").MustData()

	const count = 12
	for i := 0; i < count; i++ {
		res := chats.SendMessage(ctx, chat.ID, &entity.Message{
			SenderID: "alice",
			Content:  fmt.Sprintf("message %02d", i),
		})
		require.True(t, res.IsSuccess(), res.Message())
	}

	c := NewChatController(chats, chat.ID, "alice")
	defer c.Close()
	c.Start(ctx)

	assert.Eventually(t, func() bool {
		state := c.State()
		return state.IsSuccess() && len(state.MustData()) == count
	}, 2*time.Second, 10*time.Millisecond)

	messages := c.State().MustData()
	for i := 0; i < count; i++ {
		assert.Equal(t, fmt.Sprintf("message %02d", i), messages[i].Content)
	}
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt),
			"messages must be ordered by creation time")
	}
}
