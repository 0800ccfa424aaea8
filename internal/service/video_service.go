package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsreel-backend/internal/headline"
	"newsreel-backend/internal/model"
	"newsreel-backend/internal/slideshow"
	"newsreel-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrGenerateFailed = errors.New("video generation failed")

// VideoService 拉取标题并生成幻灯片帧，本身无状态，可并发调用
type VideoService struct {
	source headline.Source
}

func NewVideoService(source headline.Source) *VideoService {
	return &VideoService{source: source}
}

// GenerateVideo 要么完整成功，要么返回错误，不会返回部分结果
func (s *VideoService) GenerateVideo(ctx context.Context) (*model.GenerateResult, error) {
	start := time.Now()

	headlines, err := s.source.Headlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch headlines: %w", ErrGenerateFailed, err)
	}

	show, err := slideshow.Generate(headlines)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	logger.WithFields(logrus.Fields{
		"headlines":      len(headlines),
		"frames":         len(show.Frames),
		"total_duration": show.TotalDuration,
		"elapsed":        time.Since(start).String(),
	}).Info("slideshow generated")

	return &model.GenerateResult{
		Headlines: headlines,
		Slideshow: show,
	}, nil
}
