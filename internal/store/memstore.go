package store

import (
	"sync"

	"mahjong-solitaire/internal/session"
)

type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session.Session
	snapshots map[string]session.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:  map[string]*session.Session{},
		snapshots: map[string]session.Snapshot{},
	}
}

func (m *MemoryStore) GetSession(code string) (*session.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[code]
	return s, ok
}

func (m *MemoryStore) SaveSession(s *session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Code] = s
}

func (m *MemoryStore) SaveSnapshot(owner string, snap session.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[owner] = snap
}

func (m *MemoryStore) LoadSnapshot(owner string) (session.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[owner]
	return snap, ok
}
