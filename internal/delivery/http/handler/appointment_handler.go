package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	t                  *service.Translator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, t *service.Translator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		t:                  t,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case errors.Is(err, usecase.ErrInvalidDuration):
			response.Error(w, http.StatusBadRequest, "Duration must be positive", nil)
		case errors.Is(err, usecase.ErrAppointmentOverlap):
			response.Conflict(w, "Patient already has an overlapping appointment at that time")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, h.t.T("appointment.booked"), appointment)
}

// GetAppointments lists all appointments, or one day's when ?date= is given,
// or one week's when ?week_of= is given. The date defaults apply to the
// dashboard's "today" view.
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	var (
		appointments *dto.AppointmentListResponse
		err          error
	)

	switch {
	case r.URL.Query().Get("date") != "":
		appointments, err = h.appointmentUsecase.ForDay(r.Context(), r.URL.Query().Get("date"))
	case r.URL.Query().Get("week_of") != "":
		appointments, err = h.appointmentUsecase.ForWeek(r.Context(), r.URL.Query().Get("week_of"))
	default:
		appointments, err = h.appointmentUsecase.List(r.Context())
	}
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDateFormat) {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("appointment.list"), appointments)
}

// GetTodayAppointments is the dashboard shortcut for today's schedule
func (h *AppointmentHandler) GetTodayAppointments(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format(entity.DateLayout)
	appointments, err := h.appointmentUsecase.ForDay(r.Context(), today)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("appointment.list"), appointments)
}

func (h *AppointmentHandler) GetDayLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.appointmentUsecase.DayLayout(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDateFormat) {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to compute calendar layout")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("appointment.layout"), layout)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, h.t.T("appointment.status"), appointment)
}
