package assistant

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

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/ai/assistant", h.Ask)
}

func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
		return
	}

	res, err := h.service.Ask(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and prompt are required")
		case errors.Is(err, ErrNotConfigured):
			response.Error(c, http.StatusInternalServerError, "CONFIG_MISSING", "AI API key not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "AI_ERROR", "Failed to generate AI response")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
