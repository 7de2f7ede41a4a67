package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType classifies how a notification is rendered
type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifWarning NotificationType = "warning"
	NotifError   NotificationType = "error"
	NotifSuccess NotificationType = "success"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifInfo, NotifWarning, NotifError, NotifSuccess:
		return true
	}
	return false
}

// Notification is a single entry in a user's notification feed.
// user_id never changes after insert and read only flips false -> true.
type Notification struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string           `json:"user_id" gorm:"type:uuid;index:idx_notifications_user_created;not null"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(16);default:info"`
	ActionURL string           `json:"action_url,omitempty"`
	Read      bool             `json:"read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"index:idx_notifications_user_created"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
