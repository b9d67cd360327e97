package usecase

import (
	"context"
	"testing"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointment(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	booked, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: patient.ID,
		Date:      "2026-09-01",
		Time:      "09:00",
		Duration:  45,
		Reason:    "Annual Checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", booked.PatientName)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), booked.Status)

	// The booking is visible in the day view and on the patient record.
	day, err := uc.ForDay(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Equal(t, 1, day.Total)
	assert.Equal(t, booked.ID, day.Appointments[0].ID)

	detail, err := f.patientUsecase().Get(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, detail.Appointments, 1)
	assert.Equal(t, booked.ID, detail.Appointments[0].ID)
}

func TestBookAppointmentUnknownPatientLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()

	_, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: 999,
		Date:      "2026-09-01",
		Time:      "09:00",
		Duration:  30,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	all, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, all.Total)
}

func TestBookAppointmentValidation(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	tests := []struct {
		name string
		req  dto.BookAppointmentRequest
		want error
	}{
		{
			name: "bad date",
			req:  dto.BookAppointmentRequest{PatientID: patient.ID, Date: "01-09-2026", Time: "09:00", Duration: 30},
			want: ErrInvalidDateFormat,
		},
		{
			name: "bad time",
			req:  dto.BookAppointmentRequest{PatientID: patient.ID, Date: "2026-09-01", Time: "25:00", Duration: 30},
			want: ErrInvalidTimeFormat,
		},
		{
			name: "zero duration",
			req:  dto.BookAppointmentRequest{PatientID: patient.ID, Date: "2026-09-01", Time: "09:00", Duration: 0},
			want: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Book(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookAppointmentRejectsOverlapForSamePatient(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	ana := f.registerPatient(t, "Ana García", "ana@example.com")
	carlos := f.registerPatient(t, "Carlos Martinez", "carlos@example.com")

	_, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: ana.ID, Date: "2026-09-01", Time: "09:00", Duration: 60,
	})
	require.NoError(t, err)

	_, err = uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: ana.ID, Date: "2026-09-01", Time: "09:30", Duration: 30,
	})
	assert.ErrorIs(t, err, ErrAppointmentOverlap)

	// A different patient may share the window.
	_, err = uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: carlos.ID, Date: "2026-09-01", Time: "09:30", Duration: 30,
	})
	assert.NoError(t, err)

	// Back-to-back with the first booking is fine.
	_, err = uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: ana.ID, Date: "2026-09-01", Time: "10:00", Duration: 30,
	})
	assert.NoError(t, err)
}

func TestCancelledAppointmentFreesTheSlot(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	booked, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: patient.ID, Date: "2026-09-01", Time: "09:00", Duration: 60,
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), booked.ID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCancelled),
	})
	require.NoError(t, err)

	_, err = uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: patient.ID, Date: "2026-09-01", Time: "09:00", Duration: 60,
	})
	assert.NoError(t, err)
}

func TestAppointmentSnapshotSurvivesRename(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	booked, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: patient.ID, Date: "2026-09-01", Time: "09:00", Duration: 30,
	})
	require.NoError(t, err)

	_, err = f.patientUsecase().Update(context.Background(), patient.ID, &dto.UpdatePatientRequest{
		Name:    "Ana García López",
		Email:   "ana@example.com",
		Gender:  entity.GenderFemale,
		Version: patient.Version,
	})
	require.NoError(t, err)

	day, err := uc.ForDay(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Equal(t, 1, day.Total)
	assert.Equal(t, booked.ID, day.Appointments[0].ID)
	assert.Equal(t, "Ana García", day.Appointments[0].PatientName)
}

func TestForWeekCoversSevenDays(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	patient := f.registerPatient(t, "Ana García", "ana@example.com")

	for _, date := range []string{"2026-09-01", "2026-09-07", "2026-09-08"} {
		_, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
			PatientID: patient.ID, Date: date, Time: "09:00", Duration: 30,
		})
		require.NoError(t, err)
	}

	week, err := uc.ForWeek(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, week.Total)

	_, err = uc.ForWeek(context.Background(), "bad-date")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestDayLayout(t *testing.T) {
	f := newFixture()
	uc := f.appointmentUsecase()
	ana := f.registerPatient(t, "Ana García", "ana@example.com")
	carlos := f.registerPatient(t, "Carlos Martinez", "carlos@example.com")

	_, err := uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: ana.ID, Date: "2026-09-01", Time: "09:30", Duration: 45,
	})
	require.NoError(t, err)
	_, err = uc.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: carlos.ID, Date: "2026-09-01", Time: "09:45", Duration: 30,
	})
	require.NoError(t, err)

	layout, err := uc.DayLayout(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", layout.Date)
	require.Len(t, layout.Slots, 2)

	// 09:30 in an 8-hour-start, 80px-row grid sits at 120px, 45min is 58px.
	assert.InDelta(t, 120, layout.Slots[0].TopPx, 0.001)
	assert.InDelta(t, 58, layout.Slots[0].HeightPx, 0.001)

	// The overlapping pair is packed side by side.
	assert.Equal(t, 2, layout.Slots[0].Columns)
	assert.Equal(t, 2, layout.Slots[1].Columns)
	assert.NotEqual(t, layout.Slots[0].Column, layout.Slots[1].Column)
}

func TestUpdateStatusUnknownAppointment(t *testing.T) {
	f := newFixture()

	_, err := f.appointmentUsecase().UpdateStatus(context.Background(), 404, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCompleted),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
