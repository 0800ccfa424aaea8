package handler

import (
	"net/http"

	"newsreel-backend/internal/model"
	"newsreel-backend/internal/service"
	"newsreel-backend/pkg/logger"
	"newsreel-backend/web"

	"github.com/gin-gonic/gin"
)

const generateErrorMessage = "Failed to generate video"

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
	}
}

// GenerateVideo POST /api/generate-video，不需要请求体
func (h *VideoHandler) GenerateVideo(c *gin.Context) {
	res, err := h.videoService.GenerateVideo(c.Request.Context())
	if err != nil {
		// 具体原因只写日志，不返回给客户端
		logger.Errorf("Error generating video: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: generateErrorMessage})
		return
	}

	c.JSON(http.StatusOK, model.GenerateVideoResponse{
		Success:   true,
		VideoData: res.Slideshow,
		Headlines: res.Headlines,
		Message:   model.GenerateSuccessMessage,
	})
}

// Index 单页前端
func (h *VideoHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}
