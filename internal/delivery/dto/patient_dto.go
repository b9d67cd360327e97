package dto

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required"`
	DOB            string `json:"dob" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	Phone          string `json:"phone" validate:"omitempty"`
	Email          string `json:"email" validate:"required,email"`
	Address        string `json:"address" validate:"omitempty"`
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
	Notes          string `json:"notes" validate:"omitempty"`
	AvatarURL      string `json:"avatar_url" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	Name           string `json:"name" validate:"required"`
	DOB            string `json:"dob" validate:"omitempty"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	Phone          string `json:"phone" validate:"omitempty"`
	Email          string `json:"email" validate:"required,email"`
	Address        string `json:"address" validate:"omitempty"`
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
	Notes          string `json:"notes" validate:"omitempty"`
	AvatarURL      string `json:"avatar_url" validate:"omitempty"`
	// Version must echo the version the client last read; a stale value is
	// rejected so concurrent edits cannot silently overwrite each other.
	Version int64 `json:"version" validate:"required,min=1"`
}

// Response DTOs

type PatientResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DOB            string    `json:"dob,omitempty"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email"`
	Address        string    `json:"address,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PatientDetailResponse is the full aggregate view. Appointments are joined
// in from the global collection at read time.
type PatientDetailResponse struct {
	PatientResponse
	Odontogram   entity.Odontogram      `json:"odontogram"`
	Treatments   []TreatmentResponse    `json:"treatments"`
	Appointments []AppointmentResponse  `json:"appointments"`
	Files        []ClinicalFileResponse `json:"files"`
	Total        decimal.Decimal        `json:"billing_total"`
	Outstanding  decimal.Decimal        `json:"outstanding_balance"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type OdontogramResponse struct {
	PatientID  int64             `json:"patient_id"`
	Odontogram entity.Odontogram `json:"odontogram"`
}

type PatientSummaryResponse struct {
	PatientID int64  `json:"patient_id"`
	Summary   string `json:"summary"`
}

type ClinicalFileResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	UploadDate string `json:"upload_date"`
}
