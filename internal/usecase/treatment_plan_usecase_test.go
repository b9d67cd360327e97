package usecase

import (
	"context"
	"errors"
	"testing"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlanComputesTotal(t *testing.T) {
	f := newFixture()
	uc := f.planUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	plan, err := uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID: patient.ID,
		PlanName:  "Restauración Completa",
		Procedures: []dto.ProcedureDraftPayload{
			{Description: "Filling", Cost: "150"},
			{Description: "Crown", Cost: "800"},
			{Description: "Cleaning", Cost: "200"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", plan.PatientName)
	assert.Equal(t, string(entity.TreatmentPlanStatusProposed), plan.Status)
	assert.True(t, plan.TotalCost.Equal(decimal.NewFromInt(1150)))
	require.Len(t, plan.Procedures, 3)
	for _, p := range plan.Procedures {
		assert.Equal(t, string(entity.ProcedureStatusPending), p.Status)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	f := newFixture()
	uc := f.planUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	_, err := uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID:  patient.ID,
		PlanName:   "  ",
		Procedures: []dto.ProcedureDraftPayload{{Description: "Filling", Cost: "100"}},
	})
	assert.ErrorIs(t, err, ErrPlanNameRequired)

	_, err = uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID: patient.ID,
		PlanName:  "Plan",
	})
	assert.ErrorIs(t, err, ErrPlanProceduresRequired)

	_, err = uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID:  patient.ID,
		PlanName:   "Plan",
		Procedures: []dto.ProcedureDraftPayload{{Description: "Filling", Cost: "expensive"}},
	})
	assert.ErrorIs(t, err, ErrInvalidProcedureCost)

	_, err = uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID:  404,
		PlanName:   "Plan",
		Procedures: []dto.ProcedureDraftPayload{{Description: "Filling", Cost: "100"}},
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	plans, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, plans.Total, "failed creations leave no plan behind")
}

func TestDraftWithAIMergesDuplicates(t *testing.T) {
	f := newFixture()
	f.ai.drafts = []entity.ProcedureDraft{
		{Description: "Root Canal", Cost: decimal.NewFromInt(1100)},
		{Description: "Root Canal", Cost: decimal.NewFromInt(900)},
		{Description: "Crown", Cost: decimal.NewFromInt(800)},
	}
	uc := f.planUsecase()

	draft, err := uc.DraftWithAI(context.Background(), &dto.DraftProceduresRequest{Prompt: "notes"})
	require.NoError(t, err)
	require.Len(t, draft.Procedures, 2)
	assert.Equal(t, "Root Canal", draft.Procedures[0].Description)
	assert.True(t, draft.Procedures[0].Cost.Equal(decimal.NewFromInt(1100)), "first duplicate wins")
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(1900)))
}

func TestDraftWithAIFailureLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	f.ai.err = errors.New("provider down")
	uc := f.planUsecase()

	_, err := uc.DraftWithAI(context.Background(), &dto.DraftProceduresRequest{Prompt: "notes"})
	assert.Error(t, err)

	plans, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, plans.Total)
}

func TestDraftWithAIDisabled(t *testing.T) {
	f := newFixture()
	f.ai.enabled = false

	_, err := f.planUsecase().DraftWithAI(context.Background(), &dto.DraftProceduresRequest{Prompt: "notes"})
	assert.ErrorIs(t, err, service.ErrAIDisabled)
}

func TestUpdatePlanStatusCompletedIsTerminal(t *testing.T) {
	f := newFixture()
	uc := f.planUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	plan, err := uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID:  patient.ID,
		PlanName:   "Plan",
		Procedures: []dto.ProcedureDraftPayload{{Description: "Filling", Cost: "100"}},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), plan.ID, &dto.UpdatePlanStatusRequest{
		Status: string(entity.TreatmentPlanStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TreatmentPlanStatusCompleted), updated.Status)

	_, err = uc.UpdateStatus(context.Background(), plan.ID, &dto.UpdatePlanStatusRequest{
		Status: string(entity.TreatmentPlanStatusInProgress),
	})
	assert.ErrorIs(t, err, ErrPlanCompleted)
}

func TestUpdateProcedureStatus(t *testing.T) {
	f := newFixture()
	uc := f.planUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	plan, err := uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
		PatientID: patient.ID,
		PlanName:  "Plan",
		Procedures: []dto.ProcedureDraftPayload{
			{Description: "Filling", Cost: "150"},
			{Description: "Crown", Cost: "800"},
		},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProcedureStatus(context.Background(), plan.ID, plan.Procedures[0].ID, &dto.UpdateProcedureStatusRequest{
		Status: string(entity.ProcedureStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcedureStatusCompleted), updated.Procedures[0].Status)
	assert.Equal(t, string(entity.ProcedureStatusPending), updated.Procedures[1].Status)

	// The reported total stays the recomputed procedure sum.
	assert.True(t, updated.TotalCost.Equal(decimal.NewFromInt(950)))

	_, err = uc.UpdateProcedureStatus(context.Background(), plan.ID, 404, &dto.UpdateProcedureStatusRequest{
		Status: string(entity.ProcedureStatusCompleted),
	})
	assert.ErrorIs(t, err, ErrProcedureNotFound)
}

func TestListPlansByPatient(t *testing.T) {
	f := newFixture()
	uc := f.planUsecase()
	ana := f.registerPatient(t, "Ana García", "ana@example.com")
	carlos := f.registerPatient(t, "Carlos Martinez", "carlos@example.com")

	for _, p := range []struct {
		patientID int64
		name      string
	}{
		{ana.ID, "Plan A"},
		{carlos.ID, "Plan B"},
		{ana.ID, "Plan C"},
	} {
		_, err := uc.Create(context.Background(), &dto.CreateTreatmentPlanRequest{
			PatientID:  p.patientID,
			PlanName:   p.name,
			Procedures: []dto.ProcedureDraftPayload{{Description: "Filling", Cost: "100"}},
		})
		require.NoError(t, err)
	}

	all, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	mine, err := uc.ListByPatient(context.Background(), ana.ID)
	require.NoError(t, err)
	require.Equal(t, 2, mine.Total)
	assert.Equal(t, "Plan A", mine.Plans[0].PlanName)
	assert.Equal(t, "Plan C", mine.Plans[1].PlanName)
}
