package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/store/memstore"
)

func TestDirectChatIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, DirectChatID("alice", "bob"), DirectChatID("bob", "alice"))
	assert.Equal(t, "dm_alice_bob", DirectChatID("bob", "alice"))
}

func TestEnsureDirectChatCreatesOnceAndReuses(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	first := repo.EnsureDirectChat(ctx, "bob", "alice")
	require.True(t, first.IsSuccess(), first.Message())
	chat := first.MustData()
	assert.Equal(t, "direct", chat.Type)
	assert.Equal(t, []string{"alice", "bob"}, chat.Participants)
	assert.Equal(t, 0, chat.UnreadCount["alice"])

	second := repo.EnsureDirectChat(ctx, "alice", "bob")
	require.True(t, second.IsSuccess())
	assert.Equal(t, chat.ID, second.MustData().ID)
}

func TestEnsureDirectChatWithSelfFails(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)

	res := repo.EnsureDirectChat(context.Background(), "alice", "alice")
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}

func TestSendMessageDenormalizesOntoChat(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	chat := repo.EnsureDirectChat(ctx, "alice", "bob").MustData()

	res := repo.SendMessage(ctx, chat.ID, &entity.Message{
		SenderID: "alice",
		Content:  "see you at 7",
	})
	require.True(t, res.IsSuccess(), res.Message())
	sent := res.MustData()

	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, []string{"alice"}, sent.ReadBy)

	updated := repo.GetChat(ctx, chat.ID).MustData()
	assert.Equal(t, "see you at 7", updated.LastMessage)
	assert.Equal(t, 1, updated.UnreadCount["bob"])
	assert.Equal(t, 0, updated.UnreadCount["alice"])
}

func TestSendMessageByNonParticipantIsForbidden(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	chat := repo.EnsureDirectChat(ctx, "alice", "bob").MustData()

	res := repo.SendMessage(ctx, chat.ID, &entity.Message{
		SenderID: "mallory",
		Content:  "hi",
	})
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("FORBIDDEN"))
}

func TestMarkReadClearsUnreadAndIsIdempotent(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	chat := repo.EnsureDirectChat(ctx, "alice", "bob").MustData()
	sent := repo.SendMessage(ctx, chat.ID, &entity.Message{
		SenderID: "alice",
		Content:  "see you at 7",
	}).MustData()

	require.True(t, repo.MarkRead(ctx, chat.ID, sent.ID, "bob").IsSuccess())

	updated := repo.GetChat(ctx, chat.ID).MustData()
	assert.Equal(t, 0, updated.UnreadCount["bob"])

	messages := repo.ListMessages(ctx, chat.ID).MustData()
	require.Len(t, messages, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, messages[0].ReadBy)

	// Second read is a no-op Success.
	require.True(t, repo.MarkRead(ctx, chat.ID, sent.ID, "bob").IsSuccess())
	messages = repo.ListMessages(ctx, chat.ID).MustData()
	assert.Len(t, messages[0].ReadBy, 2)
}

func TestListChatsForUserFiltersAndSorts(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	older := repo.EnsureDirectChat(ctx, "alice", "bob").MustData()
	newer := repo.EnsureDirectChat(ctx, "alice", "carol").MustData()
	repo.EnsureDirectChat(ctx, "dave", "erin")

	require.True(t, repo.SendMessage(ctx, older.ID, &entity.Message{SenderID: "alice", Content: "one"}).IsSuccess())
	require.True(t, repo.SendMessage(ctx, newer.ID, &entity.Message{SenderID: "alice", Content: "two"}).IsSuccess())

	res := repo.ListChatsForUser(ctx, "alice")
	require.True(t, res.IsSuccess())
	chats := res.MustData()
	require.Len(t, chats, 2)
	assert.Equal(t, newer.ID, chats[0].ID)
	assert.Equal(t, older.ID, chats[1].ID)
}

func TestListMessagesOrdersOldestFirst(t *testing.T) {
	s := memstore.New()
	repo := NewStoreChatRepository(s)
	ctx := context.Background()

	chat := repo.EnsureDirectChat(ctx, "alice", "bob").MustData()
	require.True(t, repo.SendMessage(ctx, chat.ID, &entity.Message{SenderID: "alice", Content: "first"}).IsSuccess())
	require.True(t, repo.SendMessage(ctx, chat.ID, &entity.Message{SenderID: "bob", Content: "second"}).IsSuccess())

	messages := repo.ListMessages(ctx, chat.ID).MustData()
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}
