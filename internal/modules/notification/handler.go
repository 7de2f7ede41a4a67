package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gumeo/internal/pkg/response"
	"gumeo/internal/pkg/validator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.List)
		g.PATCH("/:id/read", h.MarkRead)
		g.PATCH("/read-all", h.MarkAllRead)
		g.DELETE("/:id", h.Delete)
	}
	protected.GET("/ws/notifications", h.Websocket)
}

// RegisterDispatchRoute exposes the service-to-service dispatch endpoint.
func (h *Handler) RegisterDispatchRoute(g *gin.RouterGroup) {
	g.POST("/notifications/dispatch", h.Dispatch)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	limit := MaxFeedSize
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	list, unread, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete notification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

// Dispatch lets other subsystems drop a row into a user's feed.
// Validation failures reject the request before anything is written.
func (h *Handler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"user_id, title and message are required", fields)
		return
	}

	n, err := h.service.Dispatch(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id, title and message are required")
		case errors.Is(err, ErrInvalidType):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "type must be one of info, warning, error, success")
		default:
			log.Printf("notification dispatch_failed err=%v", err)
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create notification")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"notification": n,
		"message":      "Notification sent successfully",
	})
}

// Websocket opens a live session: the client gets a snapshot of its feed,
// then pushed events, and may send mark_read / mark_all_read / delete /
// reload commands back over the same connection.
func (h *Handler) Websocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("notification ws_upgrade_failed user_id=%s err=%v", userID, err)
		return
	}

	center := NewCenter(h.service, userID)
	if err := center.Load(c.Request.Context()); err != nil {
		log.Printf("notification ws_load_failed user_id=%s err=%v", userID, err)
		_ = conn.Close()
		return
	}

	// The snapshot goes out before the session is registered, so no
	// concurrent push can interleave with it.
	if err := conn.WriteJSON(Snapshot{
		Type:          EventSnapshot,
		Notifications: center.Notifications(),
		UnreadCount:   center.UnreadCount(),
	}); err != nil {
		_ = conn.Close()
		return
	}

	h.hub.Register(userID, conn, center)
	defer h.hub.Unregister(userID)

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		h.handleCommand(c, center, cmd)
	}
}

func (h *Handler) handleCommand(c *gin.Context, center *Center, cmd Command) {
	ctx := c.Request.Context()

	var err error
	switch cmd.Action {
	case ActionMarkRead:
		err = center.MarkRead(ctx, cmd.ID)
	case ActionMarkAllRead:
		err = center.MarkAllRead(ctx)
	case ActionDelete:
		err = center.Delete(ctx, cmd.ID)
	case ActionReload:
		err = center.Load(ctx)
	default:
		return
	}
	if err != nil {
		log.Printf("notification ws_command_failed action=%s user_id=%s err=%v",
			cmd.Action, c.GetString("user_id"), err)
	}
}
