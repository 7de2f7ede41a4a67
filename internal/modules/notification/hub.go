package notification

import (
	"sync"

	"github.com/gorilla/websocket"

	"gumeo/internal/domain"
)

type session struct {
	conn   *websocket.Conn
	center *Center

	// The websocket allows one writer at a time; pushes triggered by
	// REST mutations and by ws commands serialize here.
	writeMu sync.Mutex
}

// Hub tracks one live websocket session per user and mirrors feed
// changes into each session's Center before pushing them out.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

func (h *Hub) Register(userID string, conn *websocket.Conn, center *Center) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.sessions[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}
	h.sessions[userID] = &session{conn: conn, center: center}
}

func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, exists := h.sessions[userID]; exists {
		if s.conn != nil {
			_ = s.conn.Close()
		}
		delete(h.sessions, userID)
	}
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.sessions[userID]
	return exists
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, s := range h.sessions {
		if s.conn != nil {
			_ = s.conn.Close()
		}
		delete(h.sessions, userID)
	}
}

func (h *Hub) get(userID string) *session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[userID]
}

func (h *Hub) push(userID string, event Event) {
	s := h.get(userID)
	if s == nil || s.conn == nil {
		return
	}

	s.writeMu.Lock()
	err := s.conn.WriteJSON(event)
	s.writeMu.Unlock()

	if err != nil {
		h.Unregister(userID)
	}
}

// NotificationCreated implements Publisher.
func (h *Hub) NotificationCreated(userID string, n domain.Notification) {
	s := h.get(userID)
	if s == nil {
		return
	}
	s.center.Apply(n)
	h.push(userID, Event{Type: EventCreated, Notification: &n, UnreadCount: s.center.UnreadCount()})
}

// NotificationRead implements Publisher.
func (h *Hub) NotificationRead(userID, id string) {
	s := h.get(userID)
	if s == nil {
		return
	}
	s.center.ApplyRead(id)
	h.push(userID, Event{Type: EventUnread, UnreadCount: s.center.UnreadCount()})
}

// AllNotificationsRead implements Publisher.
func (h *Hub) AllNotificationsRead(userID string) {
	s := h.get(userID)
	if s == nil {
		return
	}
	s.center.ApplyAllRead()
	h.push(userID, Event{Type: EventUnread, UnreadCount: s.center.UnreadCount()})
}

// NotificationDeleted implements Publisher.
func (h *Hub) NotificationDeleted(userID, id string) {
	s := h.get(userID)
	if s == nil {
		return
	}
	s.center.ApplyDelete(id)
	h.push(userID, Event{Type: EventUnread, UnreadCount: s.center.UnreadCount()})
}
