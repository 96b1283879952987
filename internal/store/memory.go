// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Each session's state is owned exclusively by that session; the store only
// hands out the pointer keyed by ID and guards the map itself.
//
// Characteristics:
//   - Stores *session.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/superhirn/mastermind/internal/session"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Session, error)
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
