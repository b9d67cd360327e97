package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/idgen"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrPlanNotFound           = errors.New("treatment plan not found")
	ErrPlanNameRequired       = errors.New("plan name is required")
	ErrPlanProceduresRequired = errors.New("a treatment plan needs at least one procedure")
	ErrInvalidProcedureCost   = errors.New("procedure cost must be a parseable, non-negative amount")
	ErrPlanCompleted          = errors.New("a completed plan cannot change status")
	ErrProcedureNotFound      = errors.New("procedure not found in plan")
)

// TreatmentPlanUsecase composes named procedure bundles, optionally drafted
// by the AI collaborator, with a cost rollup and a lifecycle status. Plans
// are independent of the billing ledger.
type TreatmentPlanUsecase interface {
	// DraftWithAI asks the AI collaborator for a procedure list. On any
	// failure nothing is persisted and the error is surfaced; a draft the
	// caller already holds is never touched.
	DraftWithAI(ctx context.Context, req *dto.DraftProceduresRequest) (*dto.DraftProceduresResponse, error)
	Create(ctx context.Context, req *dto.CreateTreatmentPlanRequest) (*dto.TreatmentPlanResponse, error)
	List(ctx context.Context) (*dto.TreatmentPlanListResponse, error)
	ListByPatient(ctx context.Context, patientID int64) (*dto.TreatmentPlanListResponse, error)
	UpdateStatus(ctx context.Context, planID int64, req *dto.UpdatePlanStatusRequest) (*dto.TreatmentPlanResponse, error)
	UpdateProcedureStatus(ctx context.Context, planID, procedureID int64, req *dto.UpdateProcedureStatusRequest) (*dto.TreatmentPlanResponse, error)
}

type treatmentPlanUsecase struct {
	log         *logrus.Logger
	ids         *idgen.Generator
	planRepo    repository.TreatmentPlanRepository
	patientRepo repository.PatientRepository
	aiClient    service.AIClient
}

func NewTreatmentPlanUsecase(
	log *logrus.Logger,
	ids *idgen.Generator,
	planRepo repository.TreatmentPlanRepository,
	patientRepo repository.PatientRepository,
	aiClient service.AIClient,
) TreatmentPlanUsecase {
	return &treatmentPlanUsecase{
		log:         log,
		ids:         ids,
		planRepo:    planRepo,
		patientRepo: patientRepo,
		aiClient:    aiClient,
	}
}

func (u *treatmentPlanUsecase) DraftWithAI(ctx context.Context, req *dto.DraftProceduresRequest) (*dto.DraftProceduresResponse, error) {
	drafts, err := u.aiClient.DraftProcedures(ctx, req.Prompt)
	if err != nil {
		u.log.Warnf("AI procedure drafting failed: %+v", err)
		return nil, err
	}

	// Merge duplicates the provider may emit, same rule as manual adds.
	var merged []entity.ProcedureDraft
	for _, d := range drafts {
		merged = entity.AppendProcedureDraft(merged, d)
	}

	total := decimal.Zero
	for _, d := range merged {
		total = total.Add(d.Cost)
	}

	return &dto.DraftProceduresResponse{
		Procedures: converter.ProcedureDraftsToResponses(merged),
		Total:      total,
	}, nil
}

func (u *treatmentPlanUsecase) Create(ctx context.Context, req *dto.CreateTreatmentPlanRequest) (*dto.TreatmentPlanResponse, error) {
	if strings.TrimSpace(req.PlanName) == "" {
		return nil, ErrPlanNameRequired
	}
	if len(req.Procedures) == 0 {
		return nil, ErrPlanProceduresRequired
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	procedures := make([]entity.TreatmentPlanProcedure, 0, len(req.Procedures))
	total := decimal.Zero
	for _, p := range req.Procedures {
		cost, err := decimal.NewFromString(strings.TrimSpace(p.Cost))
		if err != nil || cost.IsNegative() {
			return nil, ErrInvalidProcedureCost
		}
		procedures = append(procedures, entity.TreatmentPlanProcedure{
			ID:          u.ids.Next(),
			Description: p.Description,
			Cost:        cost,
			Status:      entity.ProcedureStatusPending,
		})
		total = total.Add(cost)
	}

	plan := &entity.TreatmentPlan{
		ID:          u.ids.Next(),
		PatientID:   patient.ID,
		PatientName: patient.Name, // snapshot, not re-derived on rename
		PlanName:    strings.TrimSpace(req.PlanName),
		Status:      entity.TreatmentPlanStatusProposed,
		TotalCost:   total,
		Procedures:  procedures,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := u.planRepo.Create(ctx, plan); err != nil {
		u.log.Warnf("Failed to create treatment plan: %+v", err)
		return nil, err
	}

	return converter.TreatmentPlanToResponse(plan), nil
}

func (u *treatmentPlanUsecase) List(ctx context.Context) (*dto.TreatmentPlanListResponse, error) {
	plans, err := u.planRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list treatment plans: %+v", err)
		return nil, err
	}
	return &dto.TreatmentPlanListResponse{
		Plans: converter.TreatmentPlansToResponses(plans),
		Total: len(plans),
	}, nil
}

func (u *treatmentPlanUsecase) ListByPatient(ctx context.Context, patientID int64) (*dto.TreatmentPlanListResponse, error) {
	plans, err := u.planRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list treatment plans for patient %d: %+v", patientID, err)
		return nil, err
	}
	return &dto.TreatmentPlanListResponse{
		Plans: converter.TreatmentPlansToResponses(plans),
		Total: len(plans),
	}, nil
}

func (u *treatmentPlanUsecase) UpdateStatus(ctx context.Context, planID int64, req *dto.UpdatePlanStatusRequest) (*dto.TreatmentPlanResponse, error) {
	plan, err := u.resolve(ctx, planID)
	if err != nil {
		return nil, err
	}

	next := entity.TreatmentPlanStatus(req.Status)
	if !plan.CanTransitionTo(next) {
		return nil, ErrPlanCompleted
	}
	plan.Status = next
	plan.UpdatedAt = time.Now()

	if err := u.commit(ctx, plan); err != nil {
		return nil, err
	}
	return converter.TreatmentPlanToResponse(plan), nil
}

func (u *treatmentPlanUsecase) UpdateProcedureStatus(ctx context.Context, planID, procedureID int64, req *dto.UpdateProcedureStatusRequest) (*dto.TreatmentPlanResponse, error) {
	plan, err := u.resolve(ctx, planID)
	if err != nil {
		return nil, err
	}

	procedure := plan.FindProcedure(procedureID)
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}
	procedure.Status = entity.ProcedureStatus(req.Status)
	plan.UpdatedAt = time.Now()

	if err := u.commit(ctx, plan); err != nil {
		return nil, err
	}
	return converter.TreatmentPlanToResponse(plan), nil
}

func (u *treatmentPlanUsecase) resolve(ctx context.Context, planID int64) (*entity.TreatmentPlan, error) {
	plan, err := u.planRepo.FindByID(ctx, planID)
	if err != nil {
		u.log.Warnf("Failed to find treatment plan %d: %+v", planID, err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (u *treatmentPlanUsecase) commit(ctx context.Context, plan *entity.TreatmentPlan) error {
	if err := u.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		u.log.Warnf("Failed to update treatment plan %d: %+v", plan.ID, err)
		return err
	}
	return nil
}
