package cart

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCartTTL is how long an untouched cart survives before the idle
// sweep discards it.
const DefaultCartTTL = 24 * time.Hour

// Manager owns the carts of all live sessions, keyed by session id.
type Manager struct {
	mu    sync.RWMutex
	carts map[string]*Cart
	ttl   time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &Manager{carts: make(map[string]*Cart), ttl: ttl}
}

// Get returns the session's cart, creating an empty one on first use.
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.RLock()
	c, found := m.carts[sessionID]
	m.mu.RUnlock()
	if found {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, found = m.carts[sessionID]; found {
		return c
	}
	c = New()
	m.carts[sessionID] = c
	return c
}

// Drop removes the session's cart outright (session teardown).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}

// Len returns the number of live carts.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

// Sweep discards carts idle past the TTL and returns the session ids
// that were removed so callers can tear down related session state.
// Invoked from the scheduler.
func (m *Manager) Sweep() []string {
	deadline := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed []string
	for sid, c := range m.carts {
		if c.UpdatedAt().Before(deadline) {
			delete(m.carts, sid)
			removed = append(removed, sid)
		}
	}
	if len(removed) > 0 {
		zap.L().Info("swept idle carts", zap.Int("removed", len(removed)), zap.Int("remaining", len(m.carts)))
	}
	return removed
}
