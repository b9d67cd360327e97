package repository

import (
	"context"
	"strings"
	"sync"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"
)

// memoryPatientRepository is the reference store: a process-memory map plus
// an insertion-order index, guarded by a RWMutex. Every read hands out a deep
// copy so callers can only commit changes through Update.
type memoryPatientRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*entity.Patient
	ordered []int64
}

func NewMemoryPatientRepository() domainRepo.PatientRepository {
	return &memoryPatientRepository{
		byID: make(map[int64]*entity.Patient),
	}
}

func (r *memoryPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patient.Version == 0 {
		patient.Version = 1
	}
	r.byID[patient.ID] = patient.Clone()
	r.ordered = append(r.ordered, patient.ID)
	return nil
}

func (r *memoryPatientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return patient.Clone(), nil
}

func (r *memoryPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := make([]entity.Patient, 0, len(r.ordered))
	for _, id := range r.ordered {
		patients = append(patients, *r.byID[id].Clone())
	}
	return patients, nil
}

func (r *memoryPatientRepository) Search(ctx context.Context, query string) ([]entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var patients []entity.Patient
	for _, id := range r.ordered {
		p := r.byID[id]
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) ||
			strings.Contains(strings.ToLower(p.Phone), needle) {
			patients = append(patients, *p.Clone())
		}
	}
	return patients, nil
}

func (r *memoryPatientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[patient.ID]
	if !ok {
		return domainRepo.ErrNotFound
	}
	if current.Version != patient.Version {
		return domainRepo.ErrVersionConflict
	}

	next := patient.Clone()
	next.Version++
	r.byID[patient.ID] = next
	patient.Version = next.Version
	return nil
}
