package storage

import (
	"sort"
	"sync"
)

type MemoryStorage struct {
	sessions    map[string]*Session
	maxSessions int
	mu          sync.RWMutex
}

// NewMemoryStorage maxSessions <= 0 表示不限制
func NewMemoryStorage(maxSessions int) *MemoryStorage {
	return &MemoryStorage{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

func (m *MemoryStorage) Init() error {
	return nil
}

// Close 关闭所有会话的播放器
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		session.Player.Close()
		delete(m.sessions, id)
	}
	return nil
}

func (m *MemoryStorage) CreateSession(session *Session) error {
	if session == nil || session.ID == "" || session.Player == nil {
		return ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; exists {
		return ErrSessionExists
	}
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return ErrSessionLimit
	}

	m.sessions[session.ID] = session
	return nil
}

func (m *MemoryStorage) GetSession(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession 移除并关闭会话
func (m *MemoryStorage) DeleteSession(sessionID string) error {
	m.mu.Lock()
	session, exists := m.sessions[sessionID]
	if !exists {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	session.Player.Close()
	return nil
}

// ListSessions 按创建时间排序
func (m *MemoryStorage) ListSessions() ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}
