package service

import (
	"sync"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// maxHistoryTurns bounds per-conversation history. When an append
// pushes the history past the cap, the oldest user/assistant pair is
// dropped so role alternation is preserved.
const maxHistoryTurns = 10

// ConversationStore keeps bounded per-conversation message history for
// the process lifetime. There is no cross-conversation leakage; the
// turn list for each id is only ever mutated under the lock.
type ConversationStore struct {
	mu        sync.Mutex
	histories map[string][]types.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		histories: make(map[string][]types.Message),
	}
}

// Append adds turns to the conversation, evicting the oldest pair
// while the history exceeds the cap.
func (s *ConversationStore) Append(conversationID string, turns ...types.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[conversationID], turns...)
	for len(history) > maxHistoryTurns {
		history = history[2:]
	}
	s.histories[conversationID] = history
}

// Get returns a copy of the conversation's turns in order.
func (s *ConversationStore) Get(conversationID string) []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[conversationID]
	out := make([]types.Message, len(history))
	copy(out, history)
	return out
}

func (s *ConversationStore) Clear(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, conversationID)
}
