// Package messaging keeps direct messages between members in process memory.
// Messages do not survive a restart.
package messaging

import (
	"sort"
	"sync"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// Store is a concurrency-safe in-memory message list.
type Store struct {
	mu       sync.RWMutex
	messages []*models.Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add stores a copy of msg.
func (s *Store) Add(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, &msg)
}

// ForUser returns copies of the messages sent or received by userID,
// newest first.
func (s *Store) ForUser(userID string) []models.Message {
	s.mu.RLock()
	out := []models.Message{}
	for _, m := range s.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// MarkRead marks message id as read if userID is its recipient. It reports
// whether such a message exists.
func (s *Store) MarkRead(id, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id && m.RecipientID == userID {
			m.Read = true
			return true
		}
	}
	return false
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
