package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

// maxUploadBytes caps clinical file uploads at 20 MiB
const maxUploadBytes = 20 << 20

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	t              *service.Translator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator, t *service.Translator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		t:              t,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientDataRequired):
			response.Error(w, http.StatusBadRequest, "Name and email are required", nil)
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date of birth format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, h.t.T("patient.created"), patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("patient.retrieved"), patient)
}

// GetAllPatients lists the directory; the optional ?q= parameter filters by
// case-insensitive substring over name, email and phone.
func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("patient.list"), patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrPatientConflict):
			response.Conflict(w, "Patient record was modified concurrently, reload and retry")
		case errors.Is(err, usecase.ErrPatientDataRequired):
			response.Error(w, http.StatusBadRequest, "Name and email are required", nil)
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("patient.updated"), patient)
}

func (h *PatientHandler) CycleTooth(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	toothID, err := strconv.Atoi(mux.Vars(r)["toothId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tooth ID", nil)
		return
	}

	odontogram, err := h.patientUsecase.CycleTooth(r.Context(), patientID, toothID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, entity.ErrInvalidToothID):
			response.Error(w, http.StatusBadRequest, "Tooth ID must be between 1 and 32", nil)
		case errors.Is(err, usecase.ErrPatientConflict):
			response.Conflict(w, "Patient record was modified concurrently, reload and retry")
		default:
			response.InternalServerError(w, "Failed to update tooth status")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("patient.tooth_cycled"), odontogram)
}

// UploadFile accepts a multipart form with a "file" part and appends it to
// the patient's clinical attachments.
func (h *PatientHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart request", nil)
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing file part", nil)
		return
	}
	defer part.Close()

	file, err := h.patientUsecase.AttachFile(r.Context(), patientID, service.FileIntake{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Content:  part,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrPatientConflict):
			response.Conflict(w, "Patient record was modified concurrently, reload and retry")
		default:
			response.InternalServerError(w, "Failed to store file")
		}
		return
	}

	response.Success(w, http.StatusCreated, h.t.T("patient.file_attached"), file)
}

func (h *PatientHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.patientUsecase.GenerateSummary(r.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, service.ErrAIDisabled):
			response.ServiceUnavailable(w, "AI features are disabled: configure an API key to enable them")
		case errors.Is(err, service.ErrAIRequestFailed), errors.Is(err, service.ErrAIMalformedResponse):
			response.BadGateway(w, "AI summary generation failed")
		default:
			response.InternalServerError(w, "Failed to generate summary")
		}
		return
	}

	response.Success(w, http.StatusOK, h.t.T("patient.summary_generated"), summary)
}

// parseID reads an int64 path variable, writing a 400 on failure
func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ID", nil)
		return 0, false
	}
	return id, true
}
