package dto

import (
	"time"

	"dental-clinic-api/internal/domain/entity"
)

// Request DTOs

type BookAppointmentRequest struct {
	PatientID int64  `json:"patient_id" validate:"required,min=1"`
	Date      string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time      string `json:"time" validate:"required"` // Format: HH:MM
	Duration  int    `json:"duration" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Duration    int       `json:"duration"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// DayLayoutResponse pairs one day's appointments with their computed
// calendar slot geometry.
type DayLayoutResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
	Slots        []entity.Slot         `json:"slots"`
}
