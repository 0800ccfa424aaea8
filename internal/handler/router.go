package handler

import (
	"net/http"
	"time"

	"newsreel-backend/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, videoHandler *VideoHandler, playbackHandler *PlaybackHandler) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"sessions":  playbackHandler.ActiveSessions(),
		})
	})

	router.GET("/", videoHandler.Index)

	api := router.Group("/api")
	{
		api.POST("/generate-video", videoHandler.GenerateVideo)
		api.GET("/playback/ws", playbackHandler.Connect)
		api.GET("/playback/sessions", playbackHandler.ListSessions)
		api.GET("/playback/sessions/:session_id", playbackHandler.GetSession)
	}

	return router
}
