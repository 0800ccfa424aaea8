package model

// 播放控制命令
const (
	CommandGenerate = "generate"
	CommandPlay     = "play"
	CommandPause    = "pause"
	CommandToggle   = "toggle"
	CommandReset    = "reset"
)

// PlaybackCommand 页面通过 websocket 发来的控制消息
type PlaybackCommand struct {
	Type string `json:"type" binding:"required"`
}
