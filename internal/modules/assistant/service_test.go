package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gumeo/internal/database"
	"gumeo/internal/domain"
	"gumeo/internal/modules/notification"
	"gumeo/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubCompleter replaces the upstream call. It records the prompts it
// was handed so tests can assert on the assembled system prompt.
type stubCompleter struct {
	configured   bool
	answer       string
	err          error
	systemPrompt string
	userPrompt   string
}

func (s *stubCompleter) Configured() bool { return s.configured }

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func setupAskService(t *testing.T, stub *stubCompleter) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:assistant_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	notif := notification.NewService(repository.NewNotificationRepository(db), nil)
	svc := NewService(stub, repository.NewProfileRepository(db), notif)
	return svc, db
}

func TestAskRejectsMissingFields(t *testing.T) {
	svc, _ := setupAskService(t, &stubCompleter{configured: true})

	_, err := svc.Ask(context.Background(), AskRequest{Prompt: "oi"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Ask(context.Background(), AskRequest{UserID: "u1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAskFailsClosedWithoutAPIKey(t *testing.T) {
	svc, _ := setupAskService(t, &stubCompleter{configured: false})

	_, err := svc.Ask(context.Background(), AskRequest{UserID: "u1", Prompt: "oi"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestAskMapsUpstreamFailure(t *testing.T) {
	stub := &stubCompleter{configured: true, err: errors.New("502 from upstream")}
	svc, db := setupAskService(t, stub)

	_, err := svc.Ask(context.Background(), AskRequest{UserID: "u1", Prompt: "oi"})
	require.ErrorIs(t, err, ErrUpstream)

	// a failed consultation is not logged to the feed
	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAskPersonalizesAndLogsConsultation(t *testing.T) {
	stub := &stubCompleter{configured: true, answer: "resposta gerada"}
	svc, db := setupAskService(t, stub)

	require.NoError(t, db.Create(&domain.Profile{
		UserID:    "u1",
		FullName:  "Dra. Ana Souza",
		Specialty: "Cardiologia",
		CRM:       "CRM-SP 12345",
		Plan:      domain.PlanPlus,
	}).Error)

	resp, err := svc.Ask(context.Background(), AskRequest{
		UserID:  "u1",
		Prompt:  "Paciente com dor torácica, o que priorizar?",
		Context: "triagem",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "resposta gerada", resp.Response)
	require.Equal(t, ContextTriagem, resp.Context)
	require.False(t, resp.Timestamp.IsZero())

	require.Contains(t, stub.systemPrompt, "Dra. Ana Souza")
	require.Contains(t, stub.systemPrompt, "NUNCA faça diagnósticos definitivos")
	require.Equal(t, "Paciente com dor torácica, o que priorizar?", stub.userPrompt)

	var row domain.Notification
	require.NoError(t, db.First(&row, "user_id = ?", "u1").Error)
	require.Equal(t, "Consulta AI - triagem", row.Title)
	require.True(t, strings.HasPrefix(row.Message, "Pergunta:"))
}

func TestAskEchoesUnknownContextWithoutBlock(t *testing.T) {
	stub := &stubCompleter{configured: true, answer: "ok"}
	svc, _ := setupAskService(t, stub)

	resp, err := svc.Ask(context.Background(), AskRequest{
		UserID:  "u1",
		Prompt:  "oi",
		Context: "diagnostico",
	})
	require.NoError(t, err)
	require.Equal(t, Context("diagnostico"), resp.Context)
	require.NotContains(t, stub.systemPrompt, "Contexto:")
}

func TestAskMissingContextDefaultsToGeral(t *testing.T) {
	stub := &stubCompleter{configured: true, answer: "ok"}
	svc, _ := setupAskService(t, stub)

	resp, err := svc.Ask(context.Background(), AskRequest{UserID: "u1", Prompt: "oi"})
	require.NoError(t, err)
	require.Equal(t, ContextGeral, resp.Context)
}

func TestAskToleratesMissingProfile(t *testing.T) {
	stub := &stubCompleter{configured: true, answer: "ok"}
	svc, _ := setupAskService(t, stub)

	resp, err := svc.Ask(context.Background(), AskRequest{UserID: "ghost", Prompt: "oi"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Contains(t, stub.systemPrompt, "Não informado")
}
