package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	ErrPatientNotFound     = errors.New("patient not found")
	ErrPatientDataRequired = errors.New("patient name and email are required")
	ErrPatientConflict     = errors.New("patient record was modified concurrently")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
)

// PatientUsecase is the clinic directory plus every aggregate mutation. All
// sub-entity edits (odontogram, files) flow through the same
// resolve -> mutate -> commit cycle so the stored aggregate stays consistent.
type PatientUsecase interface {
	Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, patientID int64) (*dto.PatientDetailResponse, error)
	List(ctx context.Context, query string) (*dto.PatientListResponse, error)
	CycleTooth(ctx context.Context, patientID int64, toothID int) (*dto.OdontogramResponse, error)
	AttachFile(ctx context.Context, patientID int64, intake service.FileIntake) (*dto.ClinicalFileResponse, error)
	GenerateSummary(ctx context.Context, patientID int64) (*dto.PatientSummaryResponse, error)
}

type patientUsecase struct {
	log             *logrus.Logger
	ids             *idgen.Generator
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	aiClient        service.AIClient
	blobStore       service.BlobStore
}

func NewPatientUsecase(
	log *logrus.Logger,
	ids *idgen.Generator,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	aiClient service.AIClient,
	blobStore service.BlobStore,
) PatientUsecase {
	return &patientUsecase{
		log:             log,
		ids:             ids,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		aiClient:        aiClient,
		blobStore:       blobStore,
	}
}

func (u *patientUsecase) Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrPatientDataRequired
	}
	if req.DOB != "" {
		if _, err := time.Parse(entity.DateLayout, req.DOB); err != nil {
			return nil, ErrInvalidDateFormat
		}
	}

	id := u.ids.Next()
	avatarURL := req.AvatarURL
	if avatarURL == "" {
		avatarURL = fmt.Sprintf("https://picsum.photos/seed/%d/100/100", id)
	}

	patient := &entity.Patient{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		DOB:            req.DOB,
		Gender:         req.Gender,
		Phone:          req.Phone,
		Email:          strings.TrimSpace(req.Email),
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Notes:          req.Notes,
		AvatarURL:      avatarURL,
		Odontogram:     entity.NewOdontogram(),
		Treatments:     []entity.Treatment{},
		Files:          []entity.ClinicalFile{},
		Version:        1,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrPatientDataRequired
	}

	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	patient.Name = strings.TrimSpace(req.Name)
	patient.DOB = req.DOB
	patient.Gender = req.Gender
	patient.Phone = req.Phone
	patient.Email = strings.TrimSpace(req.Email)
	patient.Address = req.Address
	patient.MedicalHistory = req.MedicalHistory
	patient.Notes = req.Notes
	if req.AvatarURL != "" {
		patient.AvatarURL = req.AvatarURL
	}
	patient.Version = req.Version
	patient.UpdatedAt = time.Now()

	if err := u.commit(ctx, patient); err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, patientID int64) (*dto.PatientDetailResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for patient %d: %+v", patientID, err)
		return nil, err
	}

	return converter.PatientToDetailResponse(patient, appointments), nil
}

func (u *patientUsecase) List(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	var (
		patients []entity.Patient
		err      error
	)
	if strings.TrimSpace(query) == "" {
		patients, err = u.patientRepo.FindAll(ctx)
	} else {
		patients, err = u.patientRepo.Search(ctx, strings.TrimSpace(query))
	}
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) CycleTooth(ctx context.Context, patientID int64, toothID int) (*dto.OdontogramResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	cycled, err := patient.Odontogram.Cycle(toothID)
	if err != nil {
		return nil, err
	}
	patient.Odontogram = cycled
	patient.UpdatedAt = time.Now()

	if err := u.commit(ctx, patient); err != nil {
		return nil, err
	}

	return &dto.OdontogramResponse{
		PatientID:  patient.ID,
		Odontogram: patient.Odontogram,
	}, nil
}

func (u *patientUsecase) AttachFile(ctx context.Context, patientID int64, intake service.FileIntake) (*dto.ClinicalFileResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	fileType, contentType, content, err := service.DetectFileType(intake)
	if err != nil {
		u.log.Warnf("Failed to inspect upload %q: %+v", intake.Name, err)
		return nil, err
	}

	url, err := u.blobStore.Put(ctx, intake.Name, contentType, content)
	if err != nil {
		u.log.Warnf("Failed to store upload %q: %+v", intake.Name, err)
		return nil, err
	}

	file := entity.ClinicalFile{
		ID:         u.ids.Next(),
		PatientID:  patient.ID,
		Name:       intake.Name,
		Type:       fileType,
		URL:        url,
		UploadDate: time.Now().Format(entity.DateLayout),
	}
	patient.Files = append(patient.Files, file)
	patient.UpdatedAt = time.Now()

	if err := u.commit(ctx, patient); err != nil {
		return nil, err
	}

	return converter.ClinicalFileToResponse(&file), nil
}

// GenerateSummary asks the AI collaborator for an overview of the patient's
// notes. Failures are surfaced as-is and never touch domain state.
func (u *patientUsecase) GenerateSummary(ctx context.Context, patientID int64) (*dto.PatientSummaryResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	summary, err := u.aiClient.SummarizePatientNotes(ctx, patient.Notes)
	if err != nil {
		u.log.Warnf("AI summary failed for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.PatientSummaryResponse{
		PatientID: patient.ID,
		Summary:   summary,
	}, nil
}

// resolve loads the aggregate or reports NotFound
func (u *patientUsecase) resolve(ctx context.Context, patientID int64) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

// commit writes the mutated aggregate back, mapping store-level failures to
// the usecase error vocabulary.
func (u *patientUsecase) commit(ctx context.Context, patient *entity.Patient) error {
	err := u.patientRepo.Update(ctx, patient)
	switch {
	case errors.Is(err, repository.ErrVersionConflict):
		return ErrPatientConflict
	case errors.Is(err, repository.ErrNotFound):
		return ErrPatientNotFound
	case err != nil:
		u.log.Warnf("Failed to update patient %d: %+v", patient.ID, err)
		return err
	}
	return nil
}
