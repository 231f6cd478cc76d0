package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

func TestConversationStoreKeepsLastTenTurns(t *testing.T) {
	store := NewConversationStore()

	for i := 1; i <= 6; i++ {
		store.Append("c1",
			types.Message{Role: types.RoleUser, Content: fmt.Sprintf("question %d", i)},
			types.Message{Role: types.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
		)
	}

	history := store.Get("c1")
	require.Len(t, history, 10)
	assert.Equal(t, "question 2", history[0].Content)
	assert.Equal(t, "answer 6", history[9].Content)
}

func TestConversationStoreIsolatesConversations(t *testing.T) {
	store := NewConversationStore()

	store.Append("a", types.Message{Role: types.RoleUser, Content: "hello from a"})
	store.Append("b", types.Message{Role: types.RoleUser, Content: "hello from b"})

	require.Len(t, store.Get("a"), 1)
	assert.Equal(t, "hello from a", store.Get("a")[0].Content)
	assert.Equal(t, "hello from b", store.Get("b")[0].Content)
}

func TestConversationStoreGetReturnsCopy(t *testing.T) {
	store := NewConversationStore()
	store.Append("c1", types.Message{Role: types.RoleUser, Content: "original"})

	history := store.Get("c1")
	history[0].Content = "mutated"

	assert.Equal(t, "original", store.Get("c1")[0].Content)
}

func TestConversationStoreClear(t *testing.T) {
	store := NewConversationStore()
	store.Append("c1", types.Message{Role: types.RoleUser, Content: "hello"})

	store.Clear("c1")

	assert.Empty(t, store.Get("c1"))
}

func TestConversationStoreUnknownIDIsEmpty(t *testing.T) {
	store := NewConversationStore()
	assert.Empty(t, store.Get("never-seen"))
}
