package model

import (
	"time"

	"newsreel-backend/internal/slideshow"
)

const GenerateSuccessMessage = "Video frames generated successfully"

// GenerateResult 一次生成的完整结果，失败时不返回部分数据
type GenerateResult struct {
	Headlines []string
	Slideshow *slideshow.Slideshow
}

// GenerateVideoResponse POST /api/generate-video 的成功响应
type GenerateVideoResponse struct {
	Success   bool                 `json:"success"`
	VideoData *slideshow.Slideshow `json:"videoData"`
	Headlines []string             `json:"headlines"`
	Message   string               `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// PlaybackMessage 通过 websocket 推送给页面的播放状态
type PlaybackMessage struct {
	Type       string   `json:"type"`
	SessionID  string   `json:"session_id"`
	State      string   `json:"state"`
	IsPlaying  bool     `json:"is_playing"`
	Index      int      `json:"index"`
	FrameCount int      `json:"frame_count"`
	SVG        string   `json:"svg,omitempty"`
	Duration   float64  `json:"duration,omitempty"`
	Headlines  []string `json:"headlines"`
	Error      string   `json:"error,omitempty"`
}

// SessionSummary GET /api/playback/sessions 列表中的一项
type SessionSummary struct {
	SessionID  string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	State      string    `json:"state"`
	Index      int       `json:"index"`
	FrameCount int       `json:"frame_count"`
}

type SessionListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}
