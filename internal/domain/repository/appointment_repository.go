package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
)

// AppointmentRepository stores the single normalized appointment collection.
// Per-patient views are derived via FindByPatientID instead of duplicating
// mutable copies on the patient aggregate, so the two views cannot drift.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id int64) (*entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	// FindByDate returns the appointments of one calendar day sorted by
	// start time.
	FindByDate(ctx context.Context, date string) ([]entity.Appointment, error)
	// FindByDateRange returns appointments with from <= date <= to, sorted
	// by date then start time.
	FindByDateRange(ctx context.Context, from, to string) ([]entity.Appointment, error)
	// FindByPatientID returns a patient's appointments in insertion order.
	FindByPatientID(ctx context.Context, patientID int64) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
}
