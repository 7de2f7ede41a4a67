package onboarding

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gumeo/internal/database"
	"gumeo/internal/domain"
	"gumeo/internal/repository"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:onboarding_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	svc := NewService(
		repository.NewProfileRepository(db),
		repository.NewPatientRepository(db),
		repository.NewAppointmentRepository(db),
	)
	return svc, db
}

func seedProfile(t *testing.T, db *gorm.DB, userID string, complete bool) {
	t.Helper()
	p := &domain.Profile{UserID: userID, Plan: domain.PlanFree}
	if complete {
		p.FullName = "Dra. Ana Souza"
		p.Specialty = "Cardiologia"
		p.CRM = "CRM-SP 12345"
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
}

func TestProgressFreshAccount(t *testing.T) {
	svc, db := setupTestService(t)
	seedProfile(t, db, "u1", false)

	p, err := svc.ComputeProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}

	if p.TotalCount != 4 || len(p.Steps) != 4 {
		t.Fatalf("expected 4 steps, got total=%d len=%d", p.TotalCount, len(p.Steps))
	}
	if p.CompletedCount != 0 {
		t.Fatalf("expected 0 completed on fresh account, got %d", p.CompletedCount)
	}
	if p.Percentage != 0 {
		t.Fatalf("expected 0%%, got %f", p.Percentage)
	}
	if p.CurrentStep != 0 {
		t.Fatalf("expected current step 0, got %d", p.CurrentStep)
	}
	if p.Done {
		t.Fatal("fresh account must not be done")
	}
	for _, st := range p.Steps {
		if st.Completed {
			t.Fatalf("step %s unexpectedly completed", st.ID)
		}
	}
}

func TestProgressAdvancesWithLiveRows(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()
	seedProfile(t, db, "u1", true)

	p, err := svc.ComputeProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}
	if p.CompletedCount != 1 || p.Percentage != 25 {
		t.Fatalf("expected 1/25%% after profile, got %d/%f", p.CompletedCount, p.Percentage)
	}
	if p.CurrentStep != 1 {
		t.Fatalf("expected current step 1, got %d", p.CurrentStep)
	}

	patient := &domain.Patient{UserID: "u1", Name: "Maria Silva"}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}

	p, err = svc.ComputeProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}
	if p.CompletedCount != 2 || p.CurrentStep != 2 {
		t.Fatalf("expected 2 completed with current step 2, got %d/%d", p.CompletedCount, p.CurrentStep)
	}

	// another user's rows never count
	other := &domain.Patient{UserID: "u2", Name: "Outro"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	appt := &domain.Appointment{UserID: "u2", PatientID: other.ID, Title: "Consulta", AppointmentDate: time.Now()}
	if err := db.Create(appt).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	p, err = svc.ComputeProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}
	if p.CompletedCount != 2 {
		t.Fatalf("expected u2 rows ignored, got %d completed", p.CompletedCount)
	}
}

func TestProgressDoneWhenAllStepsComplete(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()
	seedProfile(t, db, "u1", true)

	patient := &domain.Patient{UserID: "u1", Name: "Maria Silva"}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	appt := &domain.Appointment{UserID: "u1", PatientID: patient.ID, Title: "Consulta", AppointmentDate: time.Now()}
	if err := db.Create(appt).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	if err := svc.CompleteExploration(ctx, "u1"); err != nil {
		t.Fatalf("CompleteExploration returned error: %v", err)
	}

	p, err := svc.ComputeProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}
	if p.CompletedCount != 4 || p.Percentage != 100 {
		t.Fatalf("expected 4/100%%, got %d/%f", p.CompletedCount, p.Percentage)
	}
	if p.CurrentStep != -1 || !p.Done {
		t.Fatalf("expected done with current step -1, got %d done=%v", p.CurrentStep, p.Done)
	}
}

func TestCompleteExplorationPersists(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()
	seedProfile(t, db, "u1", false)

	if err := svc.CompleteExploration(ctx, "u1"); err != nil {
		t.Fatalf("CompleteExploration returned error: %v", err)
	}

	var profile domain.Profile
	if err := db.First(&profile, "user_id = ?", "u1").Error; err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if !profile.FeaturesExplored {
		t.Fatal("features_explored flag not persisted")
	}

	p, err := svc.ComputeProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("ComputeProgress returned error: %v", err)
	}
	if !p.Steps[3].Completed {
		t.Fatal("explore step not completed after persisted flag")
	}
}

func TestCompleteExplorationWithoutProfile(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.CompleteExploration(context.Background(), "ghost")
	if !errors.Is(err, ErrProfileMissing) {
		t.Fatalf("expected ErrProfileMissing, got %v", err)
	}
}
