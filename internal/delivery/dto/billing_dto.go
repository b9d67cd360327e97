package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

// AddChargeRequest carries the cost as a string so unparseable amounts are
// rejected explicitly rather than silently coerced by JSON number decoding.
type AddChargeRequest struct {
	Description string `json:"description" validate:"required"`
	Cost        string `json:"cost" validate:"required"`
	ToothIDs    []int  `json:"tooth_ids" validate:"omitempty,dive,min=1,max=32"`
	Date        string `json:"date" validate:"omitempty"` // Format: YYYY-MM-DD, defaults to today
}

// Response DTOs

type TreatmentResponse struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Paid        bool            `json:"paid"`
	ToothIDs    []int           `json:"tooth_ids,omitempty"`
}

type BillingStatementResponse struct {
	PatientID   int64               `json:"patient_id"`
	Treatments  []TreatmentResponse `json:"treatments"`
	Total       decimal.Decimal     `json:"total"`
	Outstanding decimal.Decimal     `json:"outstanding"`
}
