package gormstore

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type treatmentPlanRepository struct {
	db *gorm.DB
}

func NewTreatmentPlanRepository(db *gorm.DB) domainRepo.TreatmentPlanRepository {
	return &treatmentPlanRepository{db: db}
}

func (r *treatmentPlanRepository) Create(ctx context.Context, plan *entity.TreatmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *treatmentPlanRepository) FindByID(ctx context.Context, id int64) (*entity.TreatmentPlan, error) {
	var plan entity.TreatmentPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *treatmentPlanRepository) FindAll(ctx context.Context) ([]entity.TreatmentPlan, error) {
	var plans []entity.TreatmentPlan
	err := r.db.WithContext(ctx).Order("id").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *treatmentPlanRepository) FindByPatientID(ctx context.Context, patientID int64) ([]entity.TreatmentPlan, error) {
	var plans []entity.TreatmentPlan
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("id").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *treatmentPlanRepository) Update(ctx context.Context, plan *entity.TreatmentPlan) error {
	res := r.db.WithContext(ctx).
		Model(&entity.TreatmentPlan{}).
		Where("id = ?", plan.ID).
		Select("plan_name", "status", "total_cost", "procedures").
		Updates(plan)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
