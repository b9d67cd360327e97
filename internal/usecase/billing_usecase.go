package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/pkg/idgen"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrTreatmentNotFound         = errors.New("treatment not found")
	ErrChargeDescriptionRequired = errors.New("charge description is required")
	ErrInvalidChargeCost         = errors.New("charge cost must be a parseable, non-negative amount")
	ErrInvalidToothReference     = errors.New("tooth references must be between 1 and 32")
)

// BillingUsecase manages one patient's treatment ledger. Totals are pure
// derived reads; the only mutation besides appending a charge is the paid
// flag toggle.
type BillingUsecase interface {
	AddCharge(ctx context.Context, patientID int64, req *dto.AddChargeRequest) (*dto.BillingStatementResponse, error)
	TogglePaid(ctx context.Context, patientID, treatmentID int64) (*dto.BillingStatementResponse, error)
	Statement(ctx context.Context, patientID int64) (*dto.BillingStatementResponse, error)
}

type billingUsecase struct {
	log         *logrus.Logger
	ids         *idgen.Generator
	patientRepo repository.PatientRepository
}

func NewBillingUsecase(log *logrus.Logger, ids *idgen.Generator, patientRepo repository.PatientRepository) BillingUsecase {
	return &billingUsecase{
		log:         log,
		ids:         ids,
		patientRepo: patientRepo,
	}
}

func (u *billingUsecase) AddCharge(ctx context.Context, patientID int64, req *dto.AddChargeRequest) (*dto.BillingStatementResponse, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrChargeDescriptionRequired
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(req.Cost))
	if err != nil || cost.IsNegative() {
		return nil, ErrInvalidChargeCost
	}
	if !entity.ValidToothIDs(req.ToothIDs) {
		return nil, ErrInvalidToothReference
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(entity.DateLayout)
	} else if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	patient.Treatments = append(patient.Treatments, entity.Treatment{
		ID:          u.ids.Next(),
		PatientID:   patient.ID,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Cost:        cost,
		Paid:        false,
		ToothIDs:    req.ToothIDs,
	})
	patient.UpdatedAt = time.Now()

	if err := u.commit(ctx, patient); err != nil {
		return nil, err
	}
	return statement(patient), nil
}

func (u *billingUsecase) TogglePaid(ctx context.Context, patientID, treatmentID int64) (*dto.BillingStatementResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	treatment := patient.FindTreatment(treatmentID)
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	treatment.TogglePaid()
	patient.UpdatedAt = time.Now()

	if err := u.commit(ctx, patient); err != nil {
		return nil, err
	}
	return statement(patient), nil
}

func (u *billingUsecase) Statement(ctx context.Context, patientID int64) (*dto.BillingStatementResponse, error) {
	patient, err := u.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return statement(patient), nil
}

func statement(patient *entity.Patient) *dto.BillingStatementResponse {
	return &dto.BillingStatementResponse{
		PatientID:   patient.ID,
		Treatments:  converter.TreatmentsToResponses(patient.Treatments),
		Total:       patient.BillingTotal(),
		Outstanding: patient.OutstandingBalance(),
	}
}

func (u *billingUsecase) resolve(ctx context.Context, patientID int64) (*entity.Patient, error) {
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

func (u *billingUsecase) commit(ctx context.Context, patient *entity.Patient) error {
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
