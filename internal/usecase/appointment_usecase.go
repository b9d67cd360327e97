package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/idgen"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidDuration     = errors.New("appointment duration must be positive")
	ErrAppointmentOverlap  = errors.New("patient already has an overlapping appointment at that time")
)

// AppointmentUsecase is the scheduler: it owns the single normalized
// appointment collection and the calendar views derived from it.
type AppointmentUsecase interface {
	// Book creates a confirmed appointment. An unresolved patient is a
	// NotFound error, never a silent no-op, and the operation leaves the
	// collection untouched on any failure.
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context) (*dto.AppointmentListResponse, error)
	ForDay(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	ForWeek(ctx context.Context, from string) (*dto.AppointmentListResponse, error)
	DayLayout(ctx context.Context, date string) (*dto.DayLayoutResponse, error)
	UpdateStatus(ctx context.Context, appointmentID int64, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	ids             *idgen.Generator
	window          entity.SlotWindow
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	dayCache        *service.DayScheduleCache
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	ids *idgen.Generator,
	window entity.SlotWindow,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	dayCache *service.DayScheduleCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		ids:             ids,
		window:          window,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		dayCache:        dayCache,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if _, err := time.Parse(entity.DateLayout, req.Date); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := entity.MinuteOfDay(req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointment := &entity.Appointment{
		ID:          u.ids.Next(),
		PatientID:   patient.ID,
		PatientName: patient.Name, // snapshot, not re-derived on rename
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Reason:      req.Reason,
		Status:      entity.AppointmentStatusConfirmed,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	existing, err := u.appointmentRepo.FindByPatientID(ctx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for patient %d: %+v", patient.ID, err)
		return nil, err
	}
	for i := range existing {
		if appointment.Overlaps(&existing[i]) {
			return nil, ErrAppointmentOverlap
		}
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	u.dayCache.Invalidate(ctx, appointment.Date)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ForDay(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.dayAppointments(ctx, date)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ForWeek(ctx context.Context, from string) (*dto.AppointmentListResponse, error) {
	start, err := time.Parse(entity.DateLayout, from)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	to := start.AddDate(0, 0, 6).Format(entity.DateLayout)

	appointments, err := u.appointmentRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		u.log.Warnf("Failed to list appointments for week of %s: %+v", from, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// DayLayout returns one day's appointments together with their calendar
// geometry, overlap-packed into columns.
func (u *appointmentUsecase) DayLayout(ctx context.Context, date string) (*dto.DayLayoutResponse, error) {
	appointments, err := u.dayAppointments(ctx, date)
	if err != nil {
		return nil, err
	}
	return &dto.DayLayoutResponse{
		Date:         date,
		Appointments: converter.AppointmentsToResponses(appointments),
		Slots:        entity.LayoutDay(appointments, u.window),
	}, nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID int64, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	appointment.Status = entity.AppointmentStatus(req.Status)
	appointment.UpdatedAt = time.Now()

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to update appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	u.dayCache.Invalidate(ctx, appointment.Date)

	return converter.AppointmentToResponse(appointment), nil
}

// dayAppointments serves a day view through the cache when it is enabled
func (u *appointmentUsecase) dayAppointments(ctx context.Context, date string) ([]entity.Appointment, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, ErrInvalidDateFormat
	}

	if cached, ok := u.dayCache.Get(ctx, date); ok {
		return cached, nil
	}

	appointments, err := u.appointmentRepo.FindByDate(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", date, err)
		return nil, err
	}
	u.dayCache.Set(ctx, date, appointments)
	return appointments, nil
}
