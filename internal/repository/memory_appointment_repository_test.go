package repository

import (
	"context"
	"testing"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAppointment(t *testing.T, repo domainRepo.AppointmentRepository, a entity.Appointment) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &a))
}

func TestAppointmentFindByDateSortsByStartTime(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	seedAppointment(t, repo, entity.Appointment{ID: 1, PatientID: 1, Date: "2026-09-01", Time: "11:30", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 2, PatientID: 2, Date: "2026-09-01", Time: "09:00", Duration: 45})
	seedAppointment(t, repo, entity.Appointment{ID: 3, PatientID: 3, Date: "2026-09-02", Time: "08:00", Duration: 30})

	appointments, err := repo.FindByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, int64(2), appointments[0].ID)
	assert.Equal(t, int64(1), appointments[1].ID)
}

func TestAppointmentFindByDateRangeSortsByDateThenTime(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	seedAppointment(t, repo, entity.Appointment{ID: 1, PatientID: 1, Date: "2026-09-03", Time: "09:00", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 2, PatientID: 1, Date: "2026-09-01", Time: "15:00", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 3, PatientID: 1, Date: "2026-09-01", Time: "09:00", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 4, PatientID: 1, Date: "2026-09-10", Time: "09:00", Duration: 30})

	appointments, err := repo.FindByDateRange(context.Background(), "2026-09-01", "2026-09-07")
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	assert.Equal(t, int64(3), appointments[0].ID)
	assert.Equal(t, int64(2), appointments[1].ID)
	assert.Equal(t, int64(1), appointments[2].ID)
}

func TestAppointmentFindByPatientIDKeepsInsertionOrder(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	seedAppointment(t, repo, entity.Appointment{ID: 1, PatientID: 1, Date: "2026-09-02", Time: "10:00", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 2, PatientID: 2, Date: "2026-09-01", Time: "09:00", Duration: 30})
	seedAppointment(t, repo, entity.Appointment{ID: 3, PatientID: 1, Date: "2026-09-01", Time: "09:00", Duration: 30})

	appointments, err := repo.FindByPatientID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, int64(1), appointments[0].ID)
	assert.Equal(t, int64(3), appointments[1].ID)
}

func TestAppointmentUpdate(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	seedAppointment(t, repo, entity.Appointment{ID: 1, PatientID: 1, Date: "2026-09-01", Time: "09:00", Duration: 30, Status: entity.AppointmentStatusConfirmed})

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	stored.Cancel()
	require.NoError(t, repo.Update(context.Background(), stored))

	reread, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, reread.Status)

	err = repo.Update(context.Background(), &entity.Appointment{ID: 99})
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)
}
