package usecase

import (
	"context"
	"io"
	"testing"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/repository"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/idgen"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// stubAIClient stands in for the generative collaborator so usecase tests
// control its behavior exactly.
type stubAIClient struct {
	enabled bool
	summary string
	drafts  []entity.ProcedureDraft
	err     error
}

func (s *stubAIClient) Enabled() bool { return s.enabled }

func (s *stubAIClient) SummarizePatientNotes(ctx context.Context, notes string) (string, error) {
	if !s.enabled {
		return "", service.ErrAIDisabled
	}
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func (s *stubAIClient) DraftProcedures(ctx context.Context, prompt string) ([]entity.ProcedureDraft, error) {
	if !s.enabled {
		return nil, service.ErrAIDisabled
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.drafts, nil
}

// stubBlobStore records puts without touching the filesystem
type stubBlobStore struct {
	puts int
}

func (s *stubBlobStore) Put(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	io.Copy(io.Discard, content)
	s.puts++
	return "/uploads/" + name, nil
}

// fixture wires the usecases over real memory repositories, mirroring the
// production composition minus transport.
type fixture struct {
	log          *logrus.Logger
	ids          *idgen.Generator
	patients     domainRepo.PatientRepository
	appointments domainRepo.AppointmentRepository
	plans        domainRepo.TreatmentPlanRepository
	ai           *stubAIClient
	blobs        *stubBlobStore
	window       entity.SlotWindow
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &fixture{
		log:          log,
		ids:          idgen.New(),
		patients:     repository.NewMemoryPatientRepository(),
		appointments: repository.NewMemoryAppointmentRepository(),
		plans:        repository.NewMemoryTreatmentPlanRepository(),
		ai:           &stubAIClient{enabled: true},
		blobs:        &stubBlobStore{},
		window:       entity.SlotWindow{StartHour: 8, Hours: 10, RowPx: 80, PaddingPx: 2},
	}
}

func (f *fixture) patientUsecase() PatientUsecase {
	return NewPatientUsecase(f.log, f.ids, f.patients, f.appointments, f.ai, f.blobs)
}

func (f *fixture) appointmentUsecase() AppointmentUsecase {
	dayCache := service.NewDayScheduleCache(nil, f.log)
	return NewAppointmentUsecase(f.log, f.ids, f.window, f.patients, f.appointments, dayCache)
}

func (f *fixture) billingUsecase() BillingUsecase {
	return NewBillingUsecase(f.log, f.ids, f.patients)
}

func (f *fixture) planUsecase() TreatmentPlanUsecase {
	return NewTreatmentPlanUsecase(f.log, f.ids, f.plans, f.patients, f.ai)
}

func (f *fixture) registerPatient(t *testing.T, name, email string) *dto.PatientResponse {
	t.Helper()
	patient, err := f.patientUsecase().Register(context.Background(), &dto.CreatePatientRequest{
		Name:   name,
		Email:  email,
		Gender: entity.GenderFemale,
	})
	require.NoError(t, err)
	return patient
}
