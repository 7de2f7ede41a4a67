package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"gumeo/internal/domain"
	"gumeo/internal/repository"
)

// MaxFeedSize caps how many rows the feed ever serves or holds locally.
const MaxFeedSize = 50

// Publisher receives feed changes so connected sessions can stay in sync.
// Push failures never fail the originating operation.
type Publisher interface {
	NotificationCreated(userID string, n domain.Notification)
	NotificationRead(userID, id string)
	AllNotificationsRead(userID string)
	NotificationDeleted(userID, id string)
}

type Service struct {
	repo      *repository.NotificationRepository
	publisher Publisher
}

func NewService(repo *repository.NotificationRepository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create inserts one unread notification. Empty type defaults to info;
// an unknown type is rejected before any write.
func (s *Service) Create(ctx context.Context, userID, title, message string, typ domain.NotificationType, actionURL string) (*domain.Notification, error) {
	if userID == "" || title == "" || message == "" {
		return nil, ErrValidation
	}
	if typ == "" {
		typ = domain.NotifInfo
	}
	if !typ.Valid() {
		return nil, ErrInvalidType
	}

	n := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		ActionURL: actionURL,
		Read:      false,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.NotificationCreated(userID, *n)
	}
	return n, nil
}

// Dispatch handles the service-to-service payload.
func (s *Service) Dispatch(ctx context.Context, req DispatchRequest) (*domain.Notification, error) {
	return s.Create(ctx, req.UserID, req.Title, req.Message,
		domain.NotificationType(strings.TrimSpace(req.Type)), req.ActionURL)
}

// List returns up to limit (capped at MaxFeedSize) newest rows and the
// owner's unread count.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > MaxFeedSize {
		limit = MaxFeedSize
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return list, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.publisher != nil {
		s.publisher.NotificationRead(userID, id)
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.AllNotificationsRead(userID)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.publisher != nil {
		s.publisher.NotificationDeleted(userID, id)
	}
	return nil
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// NotifyPaymentReceived records a successful payment in the owner's feed.
func (s *Service) NotifyPaymentReceived(ctx context.Context, userID, patientName string, amount float64) error {
	msg := fmt.Sprintf("Pagamento de R$ %.2f recebido", amount)
	if patientName != "" {
		msg = fmt.Sprintf("Pagamento de R$ %.2f recebido de %s", amount, patientName)
	}
	_, err := s.Create(ctx, userID, "Pagamento recebido", msg, domain.NotifSuccess, "/dashboard")
	return err
}

// NotifyAIConsultation logs that an AI consultation happened. The prompt
// is cut to 100 characters before it lands in the feed.
func (s *Service) NotifyAIConsultation(ctx context.Context, userID, contextTag, prompt string) error {
	if r := []rune(prompt); len(r) > 100 {
		prompt = string(r[:100])
	}
	title := "Consulta AI - " + contextTag
	msg := fmt.Sprintf("Pergunta: %q | Resposta gerada com sucesso", prompt)
	if _, err := s.Create(ctx, userID, title, msg, domain.NotifInfo, ""); err != nil {
		log.Printf("notification ai_consult_log_failed user_id=%s err=%v", userID, err)
		return err
	}
	return nil
}
