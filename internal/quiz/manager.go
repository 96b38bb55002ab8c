package quiz

import (
	"context"
	"sync"

	"github.com/araquiz/backend/internal/models"
)

// Manager keys one session per authenticated user. Sessions are in-memory
// only; they do not survive a restart of the process.
type Manager struct {
	mu       sync.RWMutex
	source   QuestionSource
	sessions map[int64]*Session
}

func NewManager(source QuestionSource) *Manager {
	return &Manager{
		source:   source,
		sessions: make(map[int64]*Session),
	}
}

// Get returns the user's current session, if any.
func (m *Manager) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Start creates a fresh session for the user and fetches its first question.
// Any previous session for the user is discarded, whatever state it was in.
// The new session is kept even when the first fetch fails, so the caller can
// retry without losing the category choice.
func (m *Manager) Start(ctx context.Context, userID int64, category models.Category) (*Session, error) {
	s := NewSession(m.source, category)
	err := s.Start(ctx)

	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()

	return s, err
}

// Remove drops the user's session.
func (m *Manager) Remove(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
