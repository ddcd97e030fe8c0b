package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/core/domain"
)

func TestConversationStore_SaveAndGet(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "conv-1", OwnerID: "alice", Title: "Quarterly report", CreatedAt: time.Now()}
	require.NoError(t, store.SaveConversation(ctx, conv))

	got, err := store.GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly report", got.Title)

	_, err = store.GetConversation(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_ListNewestFirst(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "old", OwnerID: "alice", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "new", OwnerID: "alice", CreatedAt: base}))
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "other", OwnerID: "bob", CreatedAt: base}))

	convs, err := store.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "new", convs[0].ID)
	assert.Equal(t, "old", convs[1].ID)
}

func TestConversationStore_MessagesInOrder(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.SaveMessage(ctx, &domain.Message{ID: "m1", ConversationID: "conv-1", Role: domain.RoleUser, Content: "hi", CreatedAt: base}))
	require.NoError(t, store.SaveMessage(ctx, &domain.Message{ID: "m2", ConversationID: "conv-1", Role: domain.RoleAssistant, Content: "hello", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, store.SaveMessage(ctx, &domain.Message{ID: "m3", ConversationID: "conv-2", Role: domain.RoleUser, Content: "elsewhere", CreatedAt: base}))

	msgs, err := store.ListMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
}
