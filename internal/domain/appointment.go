package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              string            `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          string            `json:"user_id" gorm:"type:uuid;index;not null"`
	PatientID       string            `json:"patient_id" gorm:"type:uuid;index;not null"`
	Title           string            `json:"title" gorm:"not null" validate:"required"`
	Description     string            `json:"description,omitempty"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"index"`
	Duration        int               `json:"duration" gorm:"default:60"`
	Type            string            `json:"type,omitempty"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(16);default:scheduled"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID;references:ID"`
}

func (Appointment) TableName() string { return "appointments" }

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
