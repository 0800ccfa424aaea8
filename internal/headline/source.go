package headline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsreel-backend/internal/config"
	"newsreel-backend/internal/utils"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrSourceUnavailable = errors.New("headline source unavailable")
	ErrUnknownSource     = errors.New("unknown headline source")
)

// Source 提供有序的标题列表，可以替换成真实的新闻源
type Source interface {
	Headlines(ctx context.Context) ([]string, error)
}

// NewSource 根据配置选择标题来源
func NewSource(cfg config.HeadlinesConfig) (Source, error) {
	switch cfg.Source {
	case "", "static":
		return NewStaticSource(), nil
	case "file":
		if cfg.File == "" {
			return nil, fmt.Errorf("%w: headlines.file is empty", ErrUnknownSource)
		}
		return NewFileSource(cfg.File), nil
	case "feed":
		if cfg.FeedURL == "" {
			return nil, fmt.Errorf("%w: headlines.feed_url is empty", ErrUnknownSource)
		}
		return NewFeedSource(cfg.FeedURL, utils.NewHTTPClient(cfg.Timeout)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// Clean 统一做 NFC 归一化、去掉首尾空白并丢弃空条目，顺序不变
func Clean(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.TrimSpace(norm.NFC.String(h))
		if h == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}
