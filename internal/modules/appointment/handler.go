package appointment

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
	g := protected.Group("/appointments")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	list, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list appointments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "patient_id, title and appointment_date are required")
		return
	}

	a, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err, "CREATE_FAILED", "Failed to create appointment")
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	a, err := h.service.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeServiceError(c, err, "FETCH_FAILED", "Failed to get appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "patient_id, title and appointment_date are required")
		return
	}

	a, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		h.writeServiceError(c, err, "UPDATE_FAILED", "Failed to update appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.writeServiceError(c, err, "DELETE_FAILED", "Failed to delete appointment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) writeServiceError(c *gin.Context, err error, code, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrPatientMissing):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Patient not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid appointment status")
	default:
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}
