package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gumeo/internal/database"
	"gumeo/internal/middleware"
	"gumeo/internal/modules/appointment"
	"gumeo/internal/modules/assistant"
	"gumeo/internal/modules/auth"
	"gumeo/internal/modules/notification"
	"gumeo/internal/modules/onboarding"
	"gumeo/internal/modules/patient"
	"gumeo/internal/modules/payment"
	"gumeo/internal/modules/profile"
	jwtsvc "gumeo/internal/pkg/jwt"
	"gumeo/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// canned upstream so the assistant flow runs without a network
type cannedAI struct{ answer string }

func (c *cannedAI) Configured() bool { return true }

func (c *cannedAI) Complete(_ context.Context, _, _ string) (string, error) {
	return c.answer, nil
}

type testSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := notification.NewHub()
	t.Cleanup(hub.Close)

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authHandler := auth.NewHandler(auth.NewService(userRepo, profileRepo, j))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo))
	patientHandler := patient.NewHandler(patient.NewService(patientRepo))
	appointmentHandler := appointment.NewHandler(appointment.NewService(appointmentRepo, patientRepo))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, patientRepo, notificationService))
	onboardingHandler := onboarding.NewHandler(onboarding.NewService(profileRepo, patientRepo, appointmentRepo))
	assistantHandler := assistant.NewHandler(assistant.NewService(
		&cannedAI{answer: "resposta gerada"}, profileRepo, notificationService))

	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	assistantHandler.RegisterRoutes(v1)

	internal := v1.Group("/")
	internal.Use(middleware.InternalTokenAuth(""))
	notificationHandler.RegisterDispatchRoute(internal)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(j))
	{
		profileHandler.RegisterRoutes(protected)
		patientHandler.RegisterRoutes(protected)
		appointmentHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		notificationHandler.RegisterRoutes(protected)
		onboardingHandler.RegisterRoutes(protected)
	}

	return &testSuite{router: r, db: db}
}

func (s *testSuite) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *testSuite) register(t *testing.T, email string) (userID, token string) {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Dra. Ana Souza",
		"email":    email,
		"password": "segredo123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var data struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	resp := parse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.User.ID, data.AccessToken
}

func (s *testSuite) progress(t *testing.T, token string) onboarding.Progress {
	t.Helper()
	w := s.request(t, http.MethodGet, "/api/v1/onboarding/progress", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var p onboarding.Progress
	require.NoError(t, json.Unmarshal(parse(t, w).Data, &p))
	return p
}

func (s *testSuite) feed(t *testing.T, token string) (list []json.RawMessage, unread int) {
	t.Helper()
	w := s.request(t, http.MethodGet, "/api/v1/notifications", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var data struct {
		Notifications []json.RawMessage `json:"notifications"`
		UnreadCount   int               `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(parse(t, w).Data, &data))
	return data.Notifications, data.UnreadCount
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupSuite(t)

	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/patients",
		"/api/v1/appointments",
		"/api/v1/payments",
		"/api/v1/notifications",
		"/api/v1/onboarding/progress",
	} {
		w := s.request(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestPracticeJourney(t *testing.T) {
	s := setupSuite(t)
	_, token := s.register(t, "ana@gumeo.app")

	// fresh account: nothing completed, first step current
	p := s.progress(t, token)
	require.Equal(t, 0, p.CompletedCount)
	require.Equal(t, 0, p.CurrentStep)
	require.False(t, p.Done)

	// fill in the profile
	w := s.request(t, http.MethodPut, "/api/v1/profile", map[string]any{
		"full_name": "Dra. Ana Souza",
		"specialty": "Cardiologia",
		"crm":       "CRM-SP 12345",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	p = s.progress(t, token)
	require.Equal(t, 1, p.CompletedCount)
	require.Equal(t, 1, p.CurrentStep)

	// first patient
	w = s.request(t, http.MethodPost, "/api/v1/patients", map[string]any{
		"name":  "Maria Silva",
		"phone": "+55 11 91234-5678",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var createdPatient struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parse(t, w).Data, &createdPatient))
	require.NotEmpty(t, createdPatient.ID)

	// first appointment
	w = s.request(t, http.MethodPost, "/api/v1/appointments", map[string]any{
		"patient_id":       createdPatient.ID,
		"title":            "Consulta inicial",
		"appointment_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	p = s.progress(t, token)
	require.Equal(t, 3, p.CompletedCount)
	require.Equal(t, 3, p.CurrentStep)

	// payment marked paid drops a notification into the feed
	w = s.request(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"patient_id":  createdPatient.ID,
		"amount":      150.0,
		"description": "Consulta inicial",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var createdPayment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parse(t, w).Data, &createdPayment))

	w = s.request(t, http.MethodPatch, "/api/v1/payments/"+createdPayment.ID+"/paid", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	list, unread := s.feed(t, token)
	require.Len(t, list, 1)
	require.Equal(t, 1, unread)
	require.Contains(t, string(list[0]), "Pagamento recebido")
	require.Contains(t, string(list[0]), "Maria Silva")

	w = s.request(t, http.MethodPatch, "/api/v1/notifications/read-all", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	_, unread = s.feed(t, token)
	require.Zero(t, unread)

	// last step and done
	w = s.request(t, http.MethodPost, "/api/v1/onboarding/explore-complete", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	p = s.progress(t, token)
	require.Equal(t, 4, p.CompletedCount)
	require.Equal(t, float64(100), p.Percentage)
	require.Equal(t, -1, p.CurrentStep)
	require.True(t, p.Done)
}

func TestDispatchReachesOwnerFeedOnly(t *testing.T) {
	s := setupSuite(t)
	anaID, anaToken := s.register(t, "ana@gumeo.app")
	_, brunoToken := s.register(t, "bruno@gumeo.app")

	w := s.request(t, http.MethodPost, "/api/v1/notifications/dispatch", map[string]any{
		"user_id": anaID,
		"title":   "Lembrete",
		"message": "Consulta amanhã às 10h",
		"type":    "warning",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	list, unread := s.feed(t, anaToken)
	require.Len(t, list, 1)
	require.Equal(t, 1, unread)

	otherList, otherUnread := s.feed(t, brunoToken)
	require.Empty(t, otherList)
	require.Zero(t, otherUnread)
}

func TestOwnershipIsolation(t *testing.T) {
	s := setupSuite(t)
	_, anaToken := s.register(t, "ana@gumeo.app")
	_, brunoToken := s.register(t, "bruno@gumeo.app")

	w := s.request(t, http.MethodPost, "/api/v1/patients", map[string]any{"name": "Maria Silva"}, anaToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parse(t, w).Data, &created))

	// another practitioner cannot read or delete the row
	w = s.request(t, http.MethodGet, "/api/v1/patients/"+created.ID, nil, brunoToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodDelete, "/api/v1/patients/"+created.ID, nil, brunoToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodGet, "/api/v1/patients/"+created.ID, nil, anaToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAssistantAnswersAndLogsConsultation(t *testing.T) {
	s := setupSuite(t)
	anaID, anaToken := s.register(t, "ana@gumeo.app")

	w := s.request(t, http.MethodPost, "/api/v1/ai/assistant", map[string]any{
		"user_id": anaID,
		"prompt":  "Resumo da semana",
		"context": "insight",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp assistant.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "resposta gerada", resp.Response)
	require.Equal(t, assistant.ContextInsight, resp.Context)

	list, unread := s.feed(t, anaToken)
	require.Len(t, list, 1)
	require.Equal(t, 1, unread)
	require.Contains(t, string(list[0]), "Consulta AI - insight")
}
