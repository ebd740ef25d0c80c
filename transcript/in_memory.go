package transcript

import (
	"sync"

	"github.com/hupe1980/copilotcli/activity"
)

// Store records activities per conversation. Implementations must be safe
// for concurrent use; stream producers and the console consumer may record
// from different goroutines.
type Store interface {
	// Record appends one activity to the conversation's transcript. An empty
	// conversation id is a valid key for turns without a conversation
	// reference.
	Record(conversationID string, a activity.Activity)

	// Activities returns the recorded activities of a conversation in order.
	Activities(conversationID string) []activity.Activity

	// Conversations returns the ids of all recorded conversations.
	Conversations() []string
}

// InMemoryStore is a volatile Store keeping transcripts in a process local
// map. Returned slices are copies so callers cannot mutate internal state.
type InMemoryStore struct {
	mu             sync.RWMutex
	byConversation map[string][]activity.Activity
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byConversation: make(map[string][]activity.Activity)}
}

// Record appends one activity to the conversation's transcript.
func (s *InMemoryStore) Record(conversationID string, a activity.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConversation[conversationID] = append(s.byConversation[conversationID], a)
}

// Activities returns a copy of the recorded activities of a conversation.
func (s *InMemoryStore) Activities(conversationID string) []activity.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recorded := s.byConversation[conversationID]
	out := make([]activity.Activity, len(recorded))
	copy(out, recorded)
	return out
}

// Conversations returns the ids of all recorded conversations.
func (s *InMemoryStore) Conversations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.byConversation))
	for id := range s.byConversation {
		ids = append(ids, id)
	}
	return ids
}
