package repository

import (
	"context"
	"sort"
	"sync"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"
)

type memoryAppointmentRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*entity.Appointment
	ordered []int64
}

func NewMemoryAppointmentRepository() domainRepo.AppointmentRepository {
	return &memoryAppointmentRepository{
		byID: make(map[int64]*entity.Appointment),
	}
}

func (r *memoryAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *appointment
	r.byID[appointment.ID] = &cp
	r.ordered = append(r.ordered, appointment.ID)
	return nil
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointment, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *appointment
	return &cp, nil
}

func (r *memoryAppointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := make([]entity.Appointment, 0, len(r.ordered))
	for _, id := range r.ordered {
		appointments = append(appointments, *r.byID[id])
	}
	return appointments, nil
}

func (r *memoryAppointmentRepository) FindByDate(ctx context.Context, date string) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appointments []entity.Appointment
	for _, id := range r.ordered {
		if r.byID[id].Date == date {
			appointments = append(appointments, *r.byID[id])
		}
	}
	sortByStart(appointments)
	return appointments, nil
}

func (r *memoryAppointmentRepository) FindByDateRange(ctx context.Context, from, to string) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appointments []entity.Appointment
	for _, id := range r.ordered {
		a := r.byID[id]
		if a.Date >= from && a.Date <= to {
			appointments = append(appointments, *a)
		}
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return lessByStart(&appointments[i], &appointments[j])
	})
	return appointments, nil
}

func (r *memoryAppointmentRepository) FindByPatientID(ctx context.Context, patientID int64) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appointments []entity.Appointment
	for _, id := range r.ordered {
		if r.byID[id].PatientID == patientID {
			appointments = append(appointments, *r.byID[id])
		}
	}
	return appointments, nil
}

func (r *memoryAppointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[appointment.ID]; !ok {
		return domainRepo.ErrNotFound
	}
	cp := *appointment
	r.byID[appointment.ID] = &cp
	return nil
}

// sortByStart orders one day's appointments by clock time, falling back to
// id order for identical starts.
func sortByStart(appointments []entity.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return lessByStart(&appointments[i], &appointments[j])
	})
}

func lessByStart(a, b *entity.Appointment) bool {
	sa, errA := a.StartMinute()
	sb, errB := b.StartMinute()
	if errA != nil || errB != nil {
		return errA == nil
	}
	if sa != sb {
		return sa < sb
	}
	return a.ID < b.ID
}
