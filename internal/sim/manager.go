package sim

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks active in-memory sessions by ID. Abandoned sessions are
// simply removed; nothing was persisted, so no rollback is needed.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Add registers a session and returns its new ID.
func (m *Manager) Add(s *Session) string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return id
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
