package slideshow

import (
	"errors"
)

// 每类帧的时长（秒）
const (
	TitleDuration   = 2
	ContentDuration = 3
	EndDuration     = 2
)

var ErrNoHeadlines = errors.New("no headlines to render")

// Frame 一帧：完整的 SVG 文档 + 展示时长（秒）
type Frame struct {
	SVG      string  `json:"svg"`
	Duration float64 `json:"duration"`
}

// Slideshow 每次生成请求新建，不做持久化
type Slideshow struct {
	Frames        []Frame `json:"frames"`
	TotalDuration float64 `json:"totalDuration"`
}

// Generate 片头 + 每条标题一帧 + 片尾。纯函数，相同输入得到相同输出。
func Generate(headlines []string) (*Slideshow, error) {
	if len(headlines) == 0 {
		return nil, ErrNoHeadlines
	}

	frames := make([]Frame, 0, len(headlines)+2)
	frames = append(frames, Frame{SVG: RenderTitle(), Duration: TitleDuration})
	for i, h := range headlines {
		frames = append(frames, Frame{SVG: RenderContent(i+1, h), Duration: ContentDuration})
	}
	frames = append(frames, Frame{SVG: RenderEnd(), Duration: EndDuration})

	return &Slideshow{
		Frames:        frames,
		TotalDuration: TotalDuration(frames),
	}, nil
}

func TotalDuration(frames []Frame) float64 {
	var total float64
	for _, f := range frames {
		total += f.Duration
	}
	return total
}
