package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"
)

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
	t              *service.Translator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator, t *service.Translator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
		t:              t,
	}
}

func (h *BillingHandler) AddCharge(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	statement, err := h.billingUsecase.AddCharge(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrChargeDescriptionRequired):
			response.Error(w, http.StatusBadRequest, "Charge description is required", nil)
		case errors.Is(err, usecase.ErrInvalidChargeCost):
			response.Error(w, http.StatusBadRequest, "Cost must be a non-negative amount", nil)
		case errors.Is(err, usecase.ErrInvalidToothReference):
			response.Error(w, http.StatusBadRequest, "Tooth references must be between 1 and 32", nil)
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrPatientConflict):
			response.Conflict(w, "Patient record was modified concurrently, reload and retry")
		default:
			response.InternalServerError(w, "Failed to add charge")
		}
		return
	}

	response.Success(w, http.StatusCreated, h.t.T("billing.charge_added"), statement)
}

func (h *BillingHandler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	treatmentID, ok := parseID(w, r, "treatmentId")
	if !ok {
		return
	}

	statement, err := h.billingUsecase.TogglePaid(r.Context(), patientID, treatmentID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrTreatmentNotFound):
			response.NotFound(w, "Treatment not found")
		case errors.Is(err, usecase.ErrPatientConflict):
			response.Conflict(w, "Patient record was modified concurrently, reload and retry")
		default:
			response.InternalServerError(w, "Failed to update payment status")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("billing.paid_toggled"), statement)
}

func (h *BillingHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	statement, err := h.billingUsecase.Statement(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get billing statement")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("billing.statement"), statement)
}
