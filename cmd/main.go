package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"newsreel-backend/internal/config"
	"newsreel-backend/internal/handler"
	"newsreel-backend/internal/headline"
	"newsreel-backend/internal/playback"
	"newsreel-backend/internal/service"
	"newsreel-backend/internal/storage"
	"newsreel-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	source, err := headline.NewSource(cfg.Headlines)
	if err != nil {
		logger.Fatalf("标题来源配置错误: %v", err)
	}

	videoService := service.NewVideoService(source)

	sessions := storage.NewMemoryStorage(cfg.Playback.MaxSessions)
	if err := sessions.Init(); err != nil {
		logger.Fatalf("Failed to init session storage: %v", err)
	}

	videoHandler := handler.NewVideoHandler(videoService)
	playbackHandler := handler.NewPlaybackHandler(sessions, playback.ServiceFetcher(videoService), cfg.Playback)

	gin.SetMode(gin.ReleaseMode)
	router := handler.SetupRouter(cfg, videoHandler, playbackHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("服务器启动在端口 %d (headlines source: %s)", cfg.Server.Port, cfg.Headlines.Source)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// 等待信号优雅关闭
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("服务器正在关闭...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// websocket 连接已被劫持，Shutdown 不会等待它们；先关闭所有播放器
		sessions.Close()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("服务器退出: %v", err)
	}
	logger.Info("服务器已关闭")
}
