package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type DraftProceduresRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type ProcedureDraftPayload struct {
	Description string `json:"description" validate:"required"`
	Cost        string `json:"cost" validate:"required"`
}

type CreateTreatmentPlanRequest struct {
	PatientID  int64                   `json:"patient_id" validate:"required,min=1"`
	PlanName   string                  `json:"plan_name" validate:"required"`
	Procedures []ProcedureDraftPayload `json:"procedures" validate:"required,min=1,dive"`
}

type UpdatePlanStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Proposed InProgress Completed"`
}

type UpdateProcedureStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

// Response DTOs

type ProcedureDraftResponse struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

type DraftProceduresResponse struct {
	Procedures []ProcedureDraftResponse `json:"procedures"`
	Total      decimal.Decimal          `json:"total"`
}

type TreatmentPlanProcedureResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Status      string          `json:"status"`
}

type TreatmentPlanResponse struct {
	ID          int64                            `json:"id"`
	PatientID   int64                            `json:"patient_id"`
	PatientName string                           `json:"patient_name"`
	PlanName    string                           `json:"plan_name"`
	Status      string                           `json:"status"`
	TotalCost   decimal.Decimal                  `json:"total_cost"`
	Procedures  []TreatmentPlanProcedureResponse `json:"procedures"`
	CreatedAt   time.Time                        `json:"created_at"`
	UpdatedAt   time.Time                        `json:"updated_at"`
}

type TreatmentPlanListResponse struct {
	Plans []TreatmentPlanResponse `json:"plans"`
	Total int                     `json:"total"`
}
