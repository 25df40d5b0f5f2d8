package session

import (
	"context"
	"errors"
	"sync"

	"rentwear/internal/domain/loyalty"
)

// Manager hands out one Session per opaque session id. Sessions are created
// lazily with their loyalty profile loaded from the profile store.
type Manager struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*Session
}

func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, sessions: make(map[string]*Session)}
}

// Get returns the session for the id, creating it on first use.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.New("session: id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	profile, err := m.deps.Profiles.BySession(ctx, id)
	if err != nil {
		if !errors.Is(err, loyalty.ErrProfileNotFound) {
			return nil, err
		}
		profile = loyalty.NewProfile(id)
		if err := m.deps.Profiles.Save(ctx, profile); err != nil {
			return nil, err
		}
	}
	s := New(id, m.deps, profile)
	m.sessions[id] = s
	return s, nil
}

// End drops the session; its draft dies with it.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
