package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// TreatmentPlanToResponse converts a plan to its DTO. The total cost is
// re-derived from the procedures on every read so a later procedure edit can
// never surface a stale rollup.
func TreatmentPlanToResponse(plan *entity.TreatmentPlan) *dto.TreatmentPlanResponse {
	if plan == nil {
		return nil
	}

	procedures := make([]dto.TreatmentPlanProcedureResponse, 0, len(plan.Procedures))
	for _, p := range plan.Procedures {
		procedures = append(procedures, dto.TreatmentPlanProcedureResponse{
			ID:          p.ID,
			Description: p.Description,
			Cost:        p.Cost,
			Status:      string(p.Status),
		})
	}

	return &dto.TreatmentPlanResponse{
		ID:          plan.ID,
		PatientID:   plan.PatientID,
		PatientName: plan.PatientName,
		PlanName:    plan.PlanName,
		Status:      string(plan.Status),
		TotalCost:   plan.ComputedTotalCost(),
		Procedures:  procedures,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// TreatmentPlansToResponses converts a list of plans
func TreatmentPlansToResponses(plans []entity.TreatmentPlan) []dto.TreatmentPlanResponse {
	responses := make([]dto.TreatmentPlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, *TreatmentPlanToResponse(&plans[i]))
	}
	return responses
}

// ProcedureDraftsToResponses converts draft procedures
func ProcedureDraftsToResponses(drafts []entity.ProcedureDraft) []dto.ProcedureDraftResponse {
	responses := make([]dto.ProcedureDraftResponse, 0, len(drafts))
	for _, d := range drafts {
		responses = append(responses, dto.ProcedureDraftResponse{
			Description: d.Description,
			Cost:        d.Cost,
		})
	}
	return responses
}
