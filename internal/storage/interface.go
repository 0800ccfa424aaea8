package storage

import (
	"time"

	"newsreel-backend/internal/playback"
)

// Session 一个 websocket 连接对应的播放会话
type Session struct {
	ID        string
	Player    *playback.Player
	CreatedAt time.Time
}

// Storage 只保存活跃的播放会话，不做持久化
type Storage interface {
	CreateSession(session *Session) error
	GetSession(sessionID string) (*Session, error)
	DeleteSession(sessionID string) error
	ListSessions() ([]*Session, error)

	Init() error
	Close() error
}
