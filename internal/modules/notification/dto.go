package notification

import "gumeo/internal/domain"

// DispatchRequest is the payload accepted by POST /notifications/dispatch.
// Field names mirror the public contract other subsystems already send.
type DispatchRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Type      string `json:"type"`
	ActionURL string `json:"action_url"`
}

// Event is pushed over the notification websocket.
type Event struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification,omitempty"`
	UnreadCount  int                  `json:"unread_count"`
}

const (
	EventSnapshot = "snapshot"
	EventCreated  = "created"
	EventUnread   = "unread"
)

// Snapshot is the first frame sent after a websocket connect.
type Snapshot struct {
	Type          string                `json:"type"`
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// Command is what a connected client may send back over the socket.
type Command struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

const (
	ActionMarkRead    = "mark_read"
	ActionMarkAllRead = "mark_all_read"
	ActionDelete      = "delete"
	ActionReload      = "reload"
)
