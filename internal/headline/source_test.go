package headline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsreel-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_Default(t *testing.T) {
	got, err := NewStaticSource().Headlines(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, "भारत में GDP वृद्धि दर 7.2% तक पहुंची", got[0])
}

func TestStaticSource_Custom(t *testing.T) {
	got, err := NewStaticSource("A short one", "B").Headlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A short one", "B"}, got)
}

func TestStaticSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStaticSource().Headlines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClean(t *testing.T) {
	// "e" + 组合重音符 归一化为单个 "é"
	got := Clean([]string{"  first  ", "", "   ", "cafe\u0301"})
	assert.Equal(t, []string{"first", "caf\u00e9"}, got)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "headlines.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headlines:\n  - one\n  - two\n  - \"\"\n  - three\n"), 0644))

	got, err := NewFileSource(path).Headlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "nope.yaml")).Headlines(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("headlines: [unclosed"), 0644))
		_, err := NewFileSource(path).Headlines(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})
}

func TestFeedSource(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"wrapped", `{"headlines":["alpha","beta"]}`, []string{"alpha", "beta"}},
		{"items", `[{"title":"alpha"},{"title":" "},{"title":"gamma"}]`, []string{"alpha", "gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewFeedSource(srv.URL, srv.Client()).Headlines(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeedSource_Failures(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewFeedSource(srv.URL, srv.Client()).Headlines(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("garbage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		_, err := NewFeedSource(srv.URL, srv.Client()).Headlines(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewFeedSource(url, nil).Headlines(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.HeadlinesConfig{})
	require.NoError(t, err)
	assert.IsType(t, &StaticSource{}, src)

	src, err = NewSource(config.HeadlinesConfig{Source: "file", File: "x.yaml"})
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = NewSource(config.HeadlinesConfig{Source: "feed", FeedURL: "http://example.com", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &FeedSource{}, src)

	_, err = NewSource(config.HeadlinesConfig{Source: "feed"})
	assert.ErrorIs(t, err, ErrUnknownSource)

	_, err = NewSource(config.HeadlinesConfig{Source: "rss"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}
