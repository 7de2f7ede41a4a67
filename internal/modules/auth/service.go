package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"gumeo/internal/domain"
	"gumeo/internal/repository"
)

type jwtService interface {
	GenerateToken(userID string) (string, error)
}

type Service struct {
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	jwt      jwtService
}

func NewService(users *repository.UserRepository, profiles *repository.ProfileRepository, jwt jwtService) *Service {
	return &Service{users: users, profiles: profiles, jwt: jwt}
}

// Register creates the user plus an empty profile row on the free plan,
// so onboarding and settings always have a row to work against.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// concurrent signup with the same email loses on the unique index
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.profiles.Create(ctx, &domain.Profile{
		UserID: user.ID,
		Plan:   domain.PlanFree,
	}); err != nil {
		// The profile module re-creates a missing row on first read.
		log.Printf("auth profile_create_failed user_id=%s err=%v", user.ID, err)
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResponse{User: user, AccessToken: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResponse{User: user, AccessToken: token}, nil
}
