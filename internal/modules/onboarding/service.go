package onboarding

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumeo/internal/repository"
)

var ErrProfileMissing = errors.New("profile not found")

// Step ids, in the order the user walks them.
const (
	StepProfile      = "profile"
	StepFirstPatient = "first-patient"
	StepAppointment  = "schedule-appointment"
	StepExplore      = "explore-features"
)

type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Action      string `json:"action,omitempty"`
	ActionURL   string `json:"action_url,omitempty"`
}

// stepDefinitions is the fixed four-step sequence. Completion flags are
// filled in per user by ComputeProgress.
var stepDefinitions = []Step{
	{
		ID:          StepProfile,
		Title:       "Complete seu Perfil",
		Description: "Adicione suas informações pessoais e profissionais para personalizar sua experiência.",
		Action:      "Completar Perfil",
		ActionURL:   "/settings",
	},
	{
		ID:          StepFirstPatient,
		Title:       "Cadastre seu Primeiro Paciente",
		Description: "Adicione um paciente ao sistema para começar a organizar sua prática.",
		Action:      "Adicionar Paciente",
		ActionURL:   "/dashboard",
	},
	{
		ID:          StepAppointment,
		Title:       "Agende uma Consulta",
		Description: "Crie sua primeira consulta e experimente o sistema de agendamento.",
		Action:      "Agendar Consulta",
		ActionURL:   "/dashboard",
	},
	{
		ID:          StepExplore,
		Title:       "Explore os Recursos",
		Description: "Descubra todas as funcionalidades disponíveis no seu plano.",
		Action:      "Explorar Dashboard",
		ActionURL:   "/dashboard",
	},
}

// Progress is the derived onboarding state for one user.
type Progress struct {
	Steps          []Step  `json:"steps"`
	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
	Percentage     float64 `json:"percentage"`
	// CurrentStep is the index of the first incomplete step, -1 when done.
	CurrentStep int  `json:"current_step"`
	Done        bool `json:"done"`
}

type Service struct {
	profiles     *repository.ProfileRepository
	patients     *repository.PatientRepository
	appointments *repository.AppointmentRepository
}

func NewService(
	profiles *repository.ProfileRepository,
	patients *repository.PatientRepository,
	appointments *repository.AppointmentRepository,
) *Service {
	return &Service{
		profiles:     profiles,
		patients:     patients,
		appointments: appointments,
	}
}

// ComputeProgress recomputes every step from live rows: profile fields,
// patient existence, appointment existence and the persisted exploration
// flag. Nothing here caches between calls.
func (s *Service) ComputeProgress(ctx context.Context, userID string) (*Progress, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patientCount, err := s.patients.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointmentCount, err := s.appointments.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(stepDefinitions))
	copy(steps, stepDefinitions)

	for i := range steps {
		switch steps[i].ID {
		case StepProfile:
			steps[i].Completed = profile != nil && profile.Complete()
		case StepFirstPatient:
			steps[i].Completed = patientCount > 0
		case StepAppointment:
			steps[i].Completed = appointmentCount > 0
		case StepExplore:
			steps[i].Completed = profile != nil && profile.FeaturesExplored
		}
	}

	completed := 0
	current := -1
	for i, st := range steps {
		if st.Completed {
			completed++
		} else if current == -1 {
			current = i
		}
	}

	return &Progress{
		Steps:          steps,
		CompletedCount: completed,
		TotalCount:     len(steps),
		Percentage:     float64(completed) / float64(len(steps)) * 100,
		CurrentStep:    current,
		Done:           current == -1,
	}, nil
}

// CompleteExploration persists the "explore features" flag so the step
// survives reloads.
func (s *Service) CompleteExploration(ctx context.Context, userID string) error {
	err := s.profiles.SetFeaturesExplored(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileMissing
	}
	return err
}
