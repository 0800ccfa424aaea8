package headline

import "context"

var defaultHeadlines = []string{
	"भारत में GDP वृद्धि दर 7.2% तक पहुंची",
	"नई तकनीक से सौर ऊर्जा उत्पादन में बढ़ोतरी",
	"अंतर्राष्ट्रीय खेल प्रतियोगिता में भारत ने जीते 5 पदक",
	"शिक्षा क्षेत्र में नई डिजिटल पहल की घोषणा",
	"मौसम विभाग ने अगले सप्ताह भारी बारिश की चेतावनी दी",
}

// StaticSource 固定的演示数据
type StaticSource struct {
	headlines []string
}

func NewStaticSource(headlines ...string) *StaticSource {
	if len(headlines) == 0 {
		headlines = defaultHeadlines
	}
	return &StaticSource{headlines: headlines}
}

func (s *StaticSource) Headlines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Clean(s.headlines), nil
}
