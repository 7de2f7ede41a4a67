package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

type Payment struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        string        `json:"user_id" gorm:"type:uuid;index;not null"`
	PatientID     string        `json:"patient_id" gorm:"type:uuid;index;not null"`
	AppointmentID *string       `json:"appointment_id,omitempty" gorm:"type:uuid"`
	Amount        float64       `json:"amount" gorm:"not null" validate:"required,gt=0"`
	Description   string        `json:"description,omitempty"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PixKey        string        `json:"pix_key,omitempty" gorm:"column:pix_key"`
	PaymentLink   string        `json:"payment_link,omitempty"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID;references:ID"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
