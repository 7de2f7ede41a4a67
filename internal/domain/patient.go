package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string     `json:"user_id" gorm:"type:uuid;index;not null"`
	Name             string     `json:"name" gorm:"not null" validate:"required"`
	CPF              string     `json:"cpf,omitempty" gorm:"column:cpf"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	Address          string     `json:"address,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	EmergencyPhone   string     `json:"emergency_phone,omitempty"`
	MedicalHistory   string     `json:"medical_history,omitempty"`
	Allergies        string     `json:"allergies,omitempty"`
	Medications      string     `json:"medications,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Patient) TableName() string { return "patients" }

func (p *Patient) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
