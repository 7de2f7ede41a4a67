package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumeo/internal/domain"
	"gumeo/internal/repository"
)

var (
	ErrNotFound       = errors.New("appointment not found")
	ErrPatientMissing = errors.New("patient not found")
	ErrInvalidStatus  = errors.New("invalid appointment status")
)

type Service struct {
	repo     *repository.AppointmentRepository
	patients *repository.PatientRepository
}

func NewService(repo *repository.AppointmentRepository, patients *repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients}
}

// Create checks the referenced patient belongs to the caller before the
// insert; the relation itself stays advisory.
func (s *Service) Create(ctx context.Context, userID string, req AppointmentRequest) (*domain.Appointment, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientMissing
		}
		return nil, err
	}

	status := domain.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = domain.AppointmentScheduled
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 60
	}

	a := &domain.Appointment{
		UserID:          userID,
		PatientID:       req.PatientID,
		Title:           req.Title,
		Description:     req.Description,
		AppointmentDate: req.AppointmentDate,
		Duration:        duration,
		Type:            req.Type,
		Status:          status,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*domain.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id, userID string, req AppointmentRequest) (*domain.Appointment, error) {
	a, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.PatientID != a.PatientID {
		if _, err := s.patients.GetByID(ctx, req.PatientID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPatientMissing
			}
			return nil, err
		}
	}

	status := domain.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = a.Status
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	a.PatientID = req.PatientID
	a.Title = req.Title
	a.Description = req.Description
	a.AppointmentDate = req.AppointmentDate
	if req.Duration > 0 {
		a.Duration = req.Duration
	}
	a.Type = req.Type
	a.Status = status
	a.Notes = req.Notes

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
