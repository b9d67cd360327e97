package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreatmentPlanStatus represents the lifecycle status of a plan
type TreatmentPlanStatus string

const (
	TreatmentPlanStatusProposed   TreatmentPlanStatus = "Proposed"
	TreatmentPlanStatusInProgress TreatmentPlanStatus = "InProgress"
	TreatmentPlanStatusCompleted  TreatmentPlanStatus = "Completed"
)

// ProcedureStatus represents the status of one procedure inside a plan
type ProcedureStatus string

const (
	ProcedureStatusPending   ProcedureStatus = "pending"
	ProcedureStatusCompleted ProcedureStatus = "completed"
)

// ProcedureDraft is an unsaved {description, cost} pair, assembled manually
// or returned by the AI drafting service before a plan is finalized.
type ProcedureDraft struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// AppendProcedureDraft adds a draft procedure unless one with the exact same
// description (case-sensitive) is already present.
func AppendProcedureDraft(drafts []ProcedureDraft, draft ProcedureDraft) []ProcedureDraft {
	for _, d := range drafts {
		if d.Description == draft.Description {
			return drafts
		}
	}
	return append(drafts, draft)
}

// TreatmentPlanProcedure is a finalized procedure inside a plan
type TreatmentPlanProcedure struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Status      ProcedureStatus `json:"status"`
}

// TreatmentPlan is a named, costed bundle of proposed procedures. It is
// independent of the realized billing ledger: plan costs never feed the
// patient's treatment totals. PatientName is a creation-time snapshot.
type TreatmentPlan struct {
	ID          int64                    `gorm:"primaryKey" json:"id"`
	PatientID   int64                    `gorm:"not null;index" json:"patient_id"`
	PatientName string                   `gorm:"type:varchar(255);not null" json:"patient_name"`
	PlanName    string                   `gorm:"type:varchar(255);not null" json:"plan_name"`
	Status      TreatmentPlanStatus      `gorm:"type:varchar(20);not null;default:'Proposed'" json:"status"`
	TotalCost   decimal.Decimal          `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	Procedures  []TreatmentPlanProcedure `gorm:"serializer:json" json:"procedures"`
	CreatedAt   time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TreatmentPlan) TableName() string {
	return "treatment_plans"
}

// ComputedTotalCost re-derives the rollup from the procedures. Reads go
// through this rather than trusting the stored creation-time snapshot, so a
// later procedure edit can never leave a stale total on display.
func (p *TreatmentPlan) ComputedTotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, proc := range p.Procedures {
		total = total.Add(proc.Cost)
	}
	return total
}

// CanTransitionTo reports whether the status change is allowed. Completed is
// terminal; every other transition is free.
func (p *TreatmentPlan) CanTransitionTo(next TreatmentPlanStatus) bool {
	if p.Status == TreatmentPlanStatusCompleted {
		return next == TreatmentPlanStatusCompleted
	}
	return true
}

// FindProcedure returns the procedure with the given id, or nil
func (p *TreatmentPlan) FindProcedure(procedureID int64) *TreatmentPlanProcedure {
	for i := range p.Procedures {
		if p.Procedures[i].ID == procedureID {
			return &p.Procedures[i]
		}
	}
	return nil
}
