package profile

import (
	"context"
	"errors"

	"gumeo/internal/domain"
	"gumeo/internal/repository"
)

var ErrInvalidPlan = errors.New("invalid plan")

type Service struct {
	repo *repository.ProfileRepository
}

func NewService(repo *repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

// EnsureProfile returns the user's profile, creating an empty free-plan
// row on first access.
func (s *Service) EnsureProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := &domain.Profile{
		UserID: userID,
		Plan:   domain.PlanFree,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update is a read-modify-write of the editable profile fields; plan and
// the exploration flag are managed elsewhere.
func (s *Service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	p, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.FullName = req.FullName
	p.Specialty = req.Specialty
	p.CRM = req.CRM
	p.Phone = req.Phone
	p.AvatarURL = req.AvatarURL

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePlan(ctx context.Context, userID string, plan domain.Plan) (*domain.Profile, error) {
	if !plan.Valid() {
		return nil, ErrInvalidPlan
	}

	p, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Plan = plan
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
