package headline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxFeedBytes = 1 << 20

// FeedSource 从 HTTP JSON 源拉取标题。支持两种格式：
//
//	{"headlines": ["...", "..."]}
//	[{"title": "..."}, {"title": "..."}]
type FeedSource struct {
	url    string
	client *http.Client
}

func NewFeedSource(url string, client *http.Client) *FeedSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{url: url, client: client}
}

func (s *FeedSource) Headlines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %s", ErrSourceUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	headlines, err := decodeFeed(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return Clean(headlines), nil
}

func decodeFeed(body []byte) ([]string, error) {
	var wrapped struct {
		Headlines []string `json:"headlines"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return wrapped.Headlines, nil
	}

	var items []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	headlines := make([]string, 0, len(items))
	for _, item := range items {
		headlines = append(headlines, item.Title)
	}
	return headlines, nil
}
