package patient

import "time"

type PatientRequest struct {
	Name             string     `json:"name" binding:"required"`
	CPF              string     `json:"cpf"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	BirthDate        *time.Time `json:"birth_date"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	EmergencyPhone   string     `json:"emergency_phone"`
	MedicalHistory   string     `json:"medical_history"`
	Allergies        string     `json:"allergies"`
	Medications      string     `json:"medications"`
}
