package playback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsreel-backend/internal/model"
)

// ErrRequestFailed HTTPFetcher 请求 /api/generate-video 失败
var ErrRequestFailed = errors.New("generate-video request failed")

// Fetcher 获取一组新的帧
type Fetcher interface {
	Fetch(ctx context.Context) (*model.GenerateResult, error)
}

type FetcherFunc func(ctx context.Context) (*model.GenerateResult, error)

func (f FetcherFunc) Fetch(ctx context.Context) (*model.GenerateResult, error) {
	return f(ctx)
}

// Generator 由 service.VideoService 实现
type Generator interface {
	GenerateVideo(ctx context.Context) (*model.GenerateResult, error)
}

// ServiceFetcher 进程内直接调用生成服务，websocket 会话使用
func ServiceFetcher(g Generator) Fetcher {
	return FetcherFunc(g.GenerateVideo)
}

// HTTPFetcher 调用 POST /api/generate-video
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (*model.GenerateResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/generate-video", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e model.ErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrRequestFailed, resp.Status, e.Error)
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Status)
	}

	var out model.GenerateVideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrRequestFailed, err)
	}
	if !out.Success || out.VideoData == nil {
		return nil, fmt.Errorf("%w: unsuccessful response", ErrRequestFailed)
	}

	return &model.GenerateResult{
		Headlines: out.Headlines,
		Slideshow: out.VideoData,
	}, nil
}
