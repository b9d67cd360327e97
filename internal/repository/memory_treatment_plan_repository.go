package repository

import (
	"context"
	"sync"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"
)

type memoryTreatmentPlanRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*entity.TreatmentPlan
	ordered []int64
}

func NewMemoryTreatmentPlanRepository() domainRepo.TreatmentPlanRepository {
	return &memoryTreatmentPlanRepository{
		byID: make(map[int64]*entity.TreatmentPlan),
	}
}

func clonePlan(plan *entity.TreatmentPlan) *entity.TreatmentPlan {
	cp := *plan
	cp.Procedures = append([]entity.TreatmentPlanProcedure(nil), plan.Procedures...)
	return &cp
}

func (r *memoryTreatmentPlanRepository) Create(ctx context.Context, plan *entity.TreatmentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[plan.ID] = clonePlan(plan)
	r.ordered = append(r.ordered, plan.ID)
	return nil
}

func (r *memoryTreatmentPlanRepository) FindByID(ctx context.Context, id int64) (*entity.TreatmentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clonePlan(plan), nil
}

func (r *memoryTreatmentPlanRepository) FindAll(ctx context.Context) ([]entity.TreatmentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]entity.TreatmentPlan, 0, len(r.ordered))
	for _, id := range r.ordered {
		plans = append(plans, *clonePlan(r.byID[id]))
	}
	return plans, nil
}

func (r *memoryTreatmentPlanRepository) FindByPatientID(ctx context.Context, patientID int64) ([]entity.TreatmentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var plans []entity.TreatmentPlan
	for _, id := range r.ordered {
		if r.byID[id].PatientID == patientID {
			plans = append(plans, *clonePlan(r.byID[id]))
		}
	}
	return plans, nil
}

func (r *memoryTreatmentPlanRepository) Update(ctx context.Context, plan *entity.TreatmentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[plan.ID]; !ok {
		return domainRepo.ErrNotFound
	}
	r.byID[plan.ID] = clonePlan(plan)
	return nil
}
