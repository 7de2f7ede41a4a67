package payment

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"gumeo/internal/domain"
	"gumeo/internal/modules/notification"
	"gumeo/internal/repository"
)

var (
	ErrNotFound       = errors.New("payment not found")
	ErrPatientMissing = errors.New("patient not found")
	ErrInvalidStatus  = errors.New("invalid payment status")
	ErrAlreadyPaid    = errors.New("payment already paid")
)

type Service struct {
	repo          *repository.PaymentRepository
	patients      *repository.PatientRepository
	notifications *notification.Service
}

func NewService(repo *repository.PaymentRepository, patients *repository.PatientRepository, notifications *notification.Service) *Service {
	return &Service{repo: repo, patients: patients, notifications: notifications}
}

func (s *Service) Create(ctx context.Context, userID string, req PaymentRequest) (*domain.Payment, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientMissing
		}
		return nil, err
	}

	status := domain.PaymentStatus(req.Status)
	if req.Status == "" {
		status = domain.PaymentPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	p := &domain.Payment{
		UserID:        userID,
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		Description:   req.Description,
		Status:        status,
		PaymentMethod: req.PaymentMethod,
		PixKey:        req.PixKey,
		PaymentLink:   req.PaymentLink,
		DueDate:       req.DueDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*domain.Payment, error) {
	p, err := s.repo.GetByID(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkPaid flips a payment to paid, stamps the paid date and drops a
// success notification into the owner's feed. The notification is a side
// effect; its failure is logged, not propagated.
func (s *Service) MarkPaid(ctx context.Context, id, userID string) (*domain.Payment, error) {
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	p.Status = domain.PaymentPaid
	p.PaidDate = &now
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	patientName := ""
	if patient, err := s.patients.GetByID(ctx, p.PatientID, userID); err == nil {
		patientName = patient.Name
	}
	if err := s.notifications.NotifyPaymentReceived(ctx, userID, patientName, p.Amount); err != nil {
		log.Printf("payment received_notify_failed payment_id=%s err=%v", p.ID, err)
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, req PaymentRequest) (*domain.Payment, error) {
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentStatus(req.Status)
	if req.Status == "" {
		status = p.Status
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	p.PatientID = req.PatientID
	p.AppointmentID = req.AppointmentID
	p.Amount = req.Amount
	p.Description = req.Description
	p.Status = status
	p.PaymentMethod = req.PaymentMethod
	p.PixKey = req.PixKey
	p.PaymentLink = req.PaymentLink
	p.DueDate = req.DueDate

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
