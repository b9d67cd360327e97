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

type TreatmentPlanHandler struct {
	planUsecase usecase.TreatmentPlanUsecase
	catalog     *service.ProcedureCatalog
	validator   *validator.CustomValidator
	t           *service.Translator
}

func NewTreatmentPlanHandler(
	planUsecase usecase.TreatmentPlanUsecase,
	catalog *service.ProcedureCatalog,
	validator *validator.CustomValidator,
	t *service.Translator,
) *TreatmentPlanHandler {
	return &TreatmentPlanHandler{
		planUsecase: planUsecase,
		catalog:     catalog,
		validator:   validator,
		t:           t,
	}
}

// DraftWithAI asks the AI collaborator to propose procedures for a prompt.
// Nothing is persisted; failures surface as 502/503 and leave any draft the
// client holds untouched.
func (h *TreatmentPlanHandler) DraftWithAI(w http.ResponseWriter, r *http.Request) {
	var req dto.DraftProceduresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	draft, err := h.planUsecase.DraftWithAI(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAIDisabled):
			response.ServiceUnavailable(w, "AI features are disabled: configure an API key to enable them")
		case errors.Is(err, service.ErrAIRequestFailed), errors.Is(err, service.ErrAIMalformedResponse):
			response.BadGateway(w, "AI procedure drafting failed")
		default:
			response.InternalServerError(w, "Failed to draft procedures")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("plan.drafted"), draft)
}

func (h *TreatmentPlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.planUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrPlanNameRequired):
			response.Error(w, http.StatusBadRequest, "Plan name is required", nil)
		case errors.Is(err, usecase.ErrPlanProceduresRequired):
			response.Error(w, http.StatusBadRequest, "At least one procedure is required", nil)
		case errors.Is(err, usecase.ErrInvalidProcedureCost):
			response.Error(w, http.StatusBadRequest, "Procedure costs must be non-negative amounts", nil)
		default:
			response.InternalServerError(w, "Failed to create treatment plan")
		}
		return
	}

	response.Success(w, http.StatusCreated, h.t.T("plan.created"), plan)
}

func (h *TreatmentPlanHandler) GetAllPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list treatment plans")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("plan.list"), plans)
}

func (h *TreatmentPlanHandler) GetPlansByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	plans, err := h.planUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list treatment plans")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("plan.list"), plans)
}

func (h *TreatmentPlanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdatePlanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.planUsecase.UpdateStatus(r.Context(), planID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanNotFound):
			response.NotFound(w, "Treatment plan not found")
		case errors.Is(err, usecase.ErrPlanCompleted):
			response.Conflict(w, "A completed plan cannot change status")
		default:
			response.InternalServerError(w, "Failed to update plan status")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("plan.status"), plan)
}

func (h *TreatmentPlanHandler) UpdateProcedureStatus(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	procedureID, ok := parseID(w, r, "procedureId")
	if !ok {
		return
	}

	var req dto.UpdateProcedureStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.planUsecase.UpdateProcedureStatus(r.Context(), planID, procedureID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanNotFound):
			response.NotFound(w, "Treatment plan not found")
		case errors.Is(err, usecase.ErrProcedureNotFound):
			response.NotFound(w, "Procedure not found in plan")
		default:
			response.InternalServerError(w, "Failed to update procedure status")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("plan.procedure_status"), plan)
}

// GetProcedureCatalog returns the static list of common procedures with
// their default costs.
func (h *TreatmentPlanHandler) GetProcedureCatalog(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, h.t.T("catalog.procedures"), h.catalog.Common())
}
