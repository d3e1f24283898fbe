package agent

import (
	"sync"

	"github.com/firebase/genkit/go/ai"
)

// sessionStore keeps per-session conversation history in memory.
//
// Histories are bounded to maxMessages per session; when the bound is
// exceeded the oldest messages are dropped. Nothing is persisted; a process
// restart starts every session fresh.
type sessionStore struct {
	mu          sync.RWMutex
	histories   map[string][]*ai.Message
	maxMessages int
}

func newSessionStore(maxMessages int) *sessionStore {
	return &sessionStore{
		histories:   make(map[string][]*ai.Message),
		maxMessages: maxMessages,
	}
}

// History returns the stored messages for the session. The returned slice
// must not be mutated by the caller; Agent.Execute deep-copies before use.
func (s *sessionStore) History(sessionID string) []*ai.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.histories[sessionID]
}

// Append adds messages to the session's history, trimming the oldest
// messages when the bound is exceeded.
func (s *sessionStore) Append(sessionID string, msgs ...*ai.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[sessionID], msgs...)
	if len(history) > s.maxMessages {
		// Re-slice into a fresh array so dropped messages can be collected.
		trimmed := make([]*ai.Message, s.maxMessages)
		copy(trimmed, history[len(history)-s.maxMessages:])
		history = trimmed
	}
	s.histories[sessionID] = history
}

// Sessions returns the number of sessions with stored history.
func (s *sessionStore) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories)
}
