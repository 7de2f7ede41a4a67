package assistant

import (
	"encoding/json"
	"time"
)

type AskRequest struct {
	UserID          string          `json:"user_id"`
	Prompt          string          `json:"prompt"`
	Context         string          `json:"context"`
	PatientData     json.RawMessage `json:"patient_data,omitempty"`
	AppointmentData json.RawMessage `json:"appointment_data,omitempty"`
}

type AskResponse struct {
	Success   bool      `json:"success"`
	Response  string    `json:"response"`
	Context   Context   `json:"context"`
	Timestamp time.Time `json:"timestamp"`
}
