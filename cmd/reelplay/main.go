// reelplay 连接正在运行的服务，把一次完整播放过程中显示的每一帧写成 SVG 文件
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"newsreel-backend/internal/playback"
	"newsreel-backend/internal/utils"
	"newsreel-backend/pkg/logger"
)

func main() {
	var (
		serverURL string
		outDir    string
		timeout   time.Duration
		logLevel  string
	)
	flag.StringVar(&serverURL, "server", "http://localhost:3000", "服务地址")
	flag.StringVar(&outDir, "out", "./frames", "输出目录")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "生成请求超时")
	flag.StringVar(&logLevel, "log-level", "info", "日志级别")
	flag.Parse()

	if err := logger.Init(logLevel, "text"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		logger.Fatalf("create output dir: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, serverURL, outDir, timeout); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, serverURL, outDir string, timeout time.Duration) error {
	fetcher := playback.NewHTTPFetcher(serverURL, utils.NewHTTPClient(timeout))
	player := playback.NewPlayer(fetcher, playback.WithLogger(logger.WithField("server", serverURL)))
	defer player.Close()

	done := make(chan struct{})
	written := -1
	var writeErr error

	player.OnChange(func(st playback.State) {
		if st.Frame == nil || st.Index == written {
			return
		}
		written = st.Index

		path := filepath.Join(outDir, fmt.Sprintf("frame_%03d.svg", st.Index+1))
		if err := os.WriteFile(path, []byte(st.Frame.SVG), 0644); err != nil {
			writeErr = err
		}
		logger.Infof("Frame %d of %d (%.0fs) -> %s", st.Index+1, st.FrameCount, st.Frame.Duration, path)

		if st.Finished() {
			close(done)
		}
	})

	if err := player.Generate(ctx); err != nil {
		return fmt.Errorf("%s: %w", playback.ErrorMessage, err)
	}
	for _, h := range player.Snapshot().Headlines {
		logger.Infof("• %s", h)
	}

	if err := player.Play(); err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		player.Pause()
		return errors.New("interrupted")
	}

	if writeErr != nil {
		return fmt.Errorf("write frame: %w", writeErr)
	}
	return nil
}
