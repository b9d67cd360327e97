package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
)

// TreatmentPlanRepository stores finalized treatment plans
type TreatmentPlanRepository interface {
	Create(ctx context.Context, plan *entity.TreatmentPlan) error
	FindByID(ctx context.Context, id int64) (*entity.TreatmentPlan, error)
	FindAll(ctx context.Context) ([]entity.TreatmentPlan, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]entity.TreatmentPlan, error)
	Update(ctx context.Context, plan *entity.TreatmentPlan) error
}
