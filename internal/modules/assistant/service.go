package assistant

import (
	"context"
	"errors"
	"log"
	"time"

	"gumeo/internal/modules/notification"
	"gumeo/internal/repository"
)

var (
	ErrValidation    = errors.New("user_id and prompt are required")
	ErrNotConfigured = errors.New("assistant API key not configured")
	ErrUpstream      = errors.New("assistant upstream error")
)

// completer is the single upstream call the service depends on;
// narrowed to an interface so tests can stub the network.
type completer interface {
	Configured() bool
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Service struct {
	client        completer
	profiles      *repository.ProfileRepository
	notifications *notification.Service
}

func NewService(client completer, profiles *repository.ProfileRepository, notifications *notification.Service) *Service {
	return &Service{
		client:        client,
		profiles:      profiles,
		notifications: notifications,
	}
}

// Ask forwards one prompt upstream with a personalized system prompt and
// logs the consultation into the caller's notification feed. The log
// write is a side effect: its failure never fails the answer.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	if req.UserID == "" || req.Prompt == "" {
		return nil, ErrValidation
	}
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	// The tag is echoed back verbatim; an unknown one simply selects no
	// instruction block.
	tag := Context(req.Context)
	if tag == "" {
		tag = ContextGeral
	}

	// A user without a profile row still gets an answer, just without
	// the personalization block filled in.
	profile, err := s.profiles.GetByUserID(ctx, req.UserID)
	if err != nil {
		log.Printf("assistant profile_lookup_failed user_id=%s err=%v", req.UserID, err)
		profile = nil
	}

	systemPrompt := BuildSystemPrompt(profile, tag, req.PatientData, req.AppointmentData)

	answer, err := s.client.Complete(ctx, systemPrompt, req.Prompt)
	if err != nil {
		log.Printf("assistant completion_failed user_id=%s context=%s err=%v", req.UserID, tag, err)
		return nil, ErrUpstream
	}

	if err := s.notifications.NotifyAIConsultation(ctx, req.UserID, string(tag), req.Prompt); err != nil {
		log.Printf("assistant consult_log_failed user_id=%s err=%v", req.UserID, err)
	}

	return &AskResponse{
		Success:   true,
		Response:  answer,
		Context:   tag,
		Timestamp: time.Now().UTC(),
	}, nil
}
