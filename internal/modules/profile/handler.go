package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gumeo/internal/domain"
	"gumeo/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/profile")
	{
		g.GET("", h.Get)
		g.PUT("", h.Update)
		g.PATCH("/plan", h.UpdatePlan)
	}
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	p, err := h.service.EnsureProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get profile")
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "plan is required")
		return
	}

	p, err := h.service.UpdatePlan(c.Request.Context(), userID, domain.Plan(req.Plan))
	if err != nil {
		if errors.Is(err, ErrInvalidPlan) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "plan must be one of free, plus, pro")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update plan")
		return
	}

	response.Success(c, http.StatusOK, p)
}
