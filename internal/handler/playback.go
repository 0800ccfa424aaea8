package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"newsreel-backend/internal/config"
	"newsreel-backend/internal/model"
	"newsreel-backend/internal/playback"
	"newsreel-backend/internal/storage"
	"newsreel-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PlaybackHandler 每个 websocket 连接拥有一个独立的播放器，
// 定时推进在服务端完成，页面只负责发命令和显示状态
type PlaybackHandler struct {
	storage      storage.Storage
	fetcher      playback.Fetcher
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

func NewPlaybackHandler(store storage.Storage, fetcher playback.Fetcher, cfg config.PlaybackConfig) *PlaybackHandler {
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &PlaybackHandler{
		storage: store,
		fetcher: fetcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBuffer,
			WriteBufferSize: cfg.WriteBuffer,
			CheckOrigin: func(r *http.Request) bool {
				return true // 跨域由 CORS 中间件控制
			},
		},
		writeTimeout: writeTimeout,
	}
}

func (h *PlaybackHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	sessionID := uuid.New().String()
	log := logger.WithField("session_id", sessionID)

	send := func(msg model.PlaybackMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
			log.Debugf("set write deadline failed: %v", err)
		}
		return conn.WriteJSON(msg)
	}

	player := playback.NewPlayer(h.fetcher, playback.WithLogger(log))
	session := &storage.Session{ID: sessionID, Player: player, CreatedAt: time.Now()}
	if err := h.storage.CreateSession(session); err != nil {
		player.Close()
		log.Warnf("reject playback session: %v", err)
		if err := send(errorMessage(sessionID, err.Error())); err != nil {
			log.Debugf("send rejection failed: %v", err)
		}
		return
	}
	defer h.storage.DeleteSession(sessionID)

	player.OnChange(func(st playback.State) {
		if err := send(stateMessage(sessionID, st)); err != nil {
			log.Debugf("push state failed: %v", err)
		}
	})

	log.Info("playback session opened")
	defer log.Info("playback session closed")

	if err := send(stateMessage(sessionID, player.Snapshot())); err != nil {
		log.Debugf("send initial state failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	for {
		var cmd model.PlaybackCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("WebSocket read error: %v", err)
			}
			return
		}

		switch cmd.Type {
		case model.CommandGenerate:
			// 生成放到后台，读循环继续处理暂停/重置等命令
			go player.Generate(ctx)
		case model.CommandPlay:
			if err := player.Play(); err != nil {
				log.Debugf("play ignored: %v", err)
			}
		case model.CommandToggle:
			if err := player.Toggle(); err != nil {
				log.Debugf("toggle ignored: %v", err)
			}
		case model.CommandPause:
			player.Pause()
		case model.CommandReset:
			player.Reset()
		default:
			if err := send(errorMessage(sessionID, "unknown command: "+cmd.Type)); err != nil {
				log.Debugf("send command error failed: %v", err)
			}
		}
	}
}

// ListSessions GET /api/playback/sessions
func (h *PlaybackHandler) ListSessions(c *gin.Context) {
	sessions, err := h.storage.ListSessions()
	if err != nil {
		logger.Errorf("list playback sessions: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to list sessions"})
		return
	}

	resp := model.SessionListResponse{Sessions: make([]model.SessionSummary, 0, len(sessions))}
	for _, s := range sessions {
		st := s.Player.Snapshot()
		resp.Sessions = append(resp.Sessions, model.SessionSummary{
			SessionID:  s.ID,
			CreatedAt:  s.CreatedAt,
			State:      string(st.Status),
			Index:      st.Index,
			FrameCount: st.FrameCount,
		})
	}
	resp.Count = len(resp.Sessions)
	c.JSON(http.StatusOK, resp)
}

// GetSession GET /api/playback/sessions/:session_id，返回与 websocket 推送相同的状态
func (h *PlaybackHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	s, err := h.storage.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Session not found"})
			return
		}
		logger.Errorf("get playback session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to get session"})
		return
	}
	c.JSON(http.StatusOK, stateMessage(s.ID, s.Player.Snapshot()))
}

// ActiveSessions 给 /health 用，出错时返回 -1
func (h *PlaybackHandler) ActiveSessions() int {
	sessions, err := h.storage.ListSessions()
	if err != nil {
		return -1
	}
	return len(sessions)
}

func errorMessage(sessionID, text string) model.PlaybackMessage {
	return model.PlaybackMessage{Type: "error", SessionID: sessionID, Error: text, Headlines: []string{}}
}

func stateMessage(sessionID string, st playback.State) model.PlaybackMessage {
	msg := model.PlaybackMessage{
		Type:       "state",
		SessionID:  sessionID,
		State:      string(st.Status),
		IsPlaying:  st.IsPlaying(),
		Index:      st.Index,
		FrameCount: st.FrameCount,
		Headlines:  st.Headlines,
		Error:      st.Error,
	}
	if msg.Headlines == nil {
		msg.Headlines = []string{}
	}
	if st.Frame != nil {
		msg.SVG = st.Frame.SVG
		msg.Duration = st.Frame.Duration
	}
	return msg
}
