package appointment

import "time"

type AppointmentRequest struct {
	PatientID       string    `json:"patient_id" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Duration        int       `json:"duration"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}
