package patient

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumeo/internal/domain"
	"gumeo/internal/repository"
)

var ErrNotFound = errors.New("patient not found")

type Service struct {
	repo *repository.PatientRepository
}

func NewService(repo *repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID string, req PatientRequest) (*domain.Patient, error) {
	p := &domain.Patient{
		UserID:           userID,
		Name:             req.Name,
		CPF:              req.CPF,
		Email:            req.Email,
		Phone:            req.Phone,
		BirthDate:        req.BirthDate,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
		Medications:      req.Medications,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*domain.Patient, error) {
	p, err := s.repo.GetByID(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Patient, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id, userID string, req PatientRequest) (*domain.Patient, error) {
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.CPF = req.CPF
	p.Email = req.Email
	p.Phone = req.Phone
	p.BirthDate = req.BirthDate
	p.Address = req.Address
	p.EmergencyContact = req.EmergencyContact
	p.EmergencyPhone = req.EmergencyPhone
	p.MedicalHistory = req.MedicalHistory
	p.Allergies = req.Allergies
	p.Medications = req.Medications

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
