package cart

import (
	"context"
	"sync"
	"time"
)

// Manager hands out one Store per session key. Stores are cached in memory
// and rehydrated from the persister on first use, so every consumer of a
// session sees the same store instance. Session keys arrive from clients,
// so idle stores are swept to keep the cache bounded; persisted state
// outlives the sweep and the next Get rehydrates.
type Manager struct {
	mu        sync.Mutex
	entries   map[string]*managerEntry
	persister Persister
	observers []Observer
	idleAfter time.Duration
	lastSweep time.Time
}

type managerEntry struct {
	store     *Store
	lastTouch time.Time
}

// NewManager creates a manager whose stores persist through persister.
// Stores untouched for idleAfter are dropped from memory; idleAfter <= 0
// disables sweeping. The given observers are subscribed to every store
// the manager creates.
func NewManager(persister Persister, idleAfter time.Duration, observers ...Observer) *Manager {
	return &Manager{
		entries:   make(map[string]*managerEntry),
		persister: persister,
		observers: observers,
		idleAfter: idleAfter,
	}
}

// Get returns the store for the session, creating and rehydrating it if
// this is the first touch since startup or since the last sweep.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	now := time.Now()

	m.mu.Lock()
	m.sweepLocked(now)

	if e, ok := m.entries[sessionID]; ok {
		e.lastTouch = now
		m.mu.Unlock()

		return e.store
	}
	m.mu.Unlock()

	// Rehydration reads the persister, so it happens outside the manager
	// lock. A racing Get for the same session keeps the first store.
	s := NewStore(ctx, sessionID, m.persister)
	for _, o := range m.observers {
		s.Subscribe(o)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[sessionID]; ok {
		existing.lastTouch = now

		return existing.store
	}

	m.entries[sessionID] = &managerEntry{store: s, lastTouch: now}

	return s
}

// Evict forgets the in-memory store for a session. Persisted state is
// untouched; the next Get rehydrates.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)
}

// Len reports how many stores are currently held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// sweepLocked drops entries idle past the timeout. It runs at most once
// per idle interval so busy paths pay for it rarely.
func (m *Manager) sweepLocked(now time.Time) {
	if m.idleAfter <= 0 || now.Sub(m.lastSweep) < m.idleAfter {
		return
	}

	m.lastSweep = now

	for id, e := range m.entries {
		if now.Sub(e.lastTouch) >= m.idleAfter {
			delete(m.entries, id)
		}
	}
}
