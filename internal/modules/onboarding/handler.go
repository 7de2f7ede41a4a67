package onboarding

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gumeo/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/onboarding")
	{
		g.GET("/progress", h.GetProgress)
		g.POST("/explore-complete", h.CompleteExploration)
	}
}

func (h *Handler) GetProgress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	progress, err := h.service.ComputeProgress(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to compute onboarding progress")
		return
	}

	response.Success(c, http.StatusOK, progress)
}

func (h *Handler) CompleteExploration(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	if err := h.service.CompleteExploration(c.Request.Context(), userID); err != nil {
		if errors.Is(err, ErrProfileMissing) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to complete step")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "completed"})
}
