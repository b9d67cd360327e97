package gormstore

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	if patient.Version == 0 {
		patient.Version = 1
	}
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).
		Preload("Treatments").
		Preload("Files").
		Where("id = ?", id).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Preload("Treatments").
		Preload("Files").
		Order("created_at").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, query string) ([]entity.Patient, error) {
	var patients []entity.Patient
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Treatments").
		Preload("Files").
		Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern).
		Order("created_at").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Update commits the aggregate inside a transaction with an optimistic
// version check, then re-saves the owned treatment and file rows.
func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		version := patient.Version
		patient.Version = version + 1

		res := tx.Model(&entity.Patient{}).
			Where("id = ? AND version = ?", patient.ID, version).
			Select("name", "dob", "gender", "phone", "email", "address",
				"medical_history", "notes", "avatar_url", "odontogram", "version").
			Updates(patient)
		if res.Error != nil {
			patient.Version = version
			return res.Error
		}
		if res.RowsAffected == 0 {
			patient.Version = version
			var count int64
			if err := tx.Model(&entity.Patient{}).Where("id = ?", patient.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainRepo.ErrNotFound
			}
			return domainRepo.ErrVersionConflict
		}

		for i := range patient.Treatments {
			patient.Treatments[i].PatientID = patient.ID
			if err := tx.Save(&patient.Treatments[i]).Error; err != nil {
				return err
			}
		}
		for i := range patient.Files {
			patient.Files[i].PatientID = patient.ID
			if err := tx.Save(&patient.Files[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
