package payment

import "time"

type PaymentRequest struct {
	PatientID     string     `json:"patient_id" binding:"required"`
	AppointmentID *string    `json:"appointment_id"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	PixKey        string     `json:"pix_key"`
	PaymentLink   string     `json:"payment_link"`
	DueDate       *time.Time `json:"due_date"`
}
