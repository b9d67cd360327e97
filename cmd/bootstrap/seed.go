package bootstrap

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// seedDemoData loads a small demo clinic so the API is explorable without a
// client. Intended for the memory store; it is skipped when patients already
// exist.
func seedDemoData(ctx context.Context, repos *repositories) error {
	existing, err := repos.patients.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now().Format(entity.DateLayout)

	patients := []*entity.Patient{
		{
			ID:             1,
			Name:           "Ana García",
			DOB:            "1985-05-20",
			Gender:         entity.GenderFemale,
			Phone:          "+34 612 345 678",
			Email:          "ana.garcia@example.com",
			Address:        "Calle Falsa 123, Madrid",
			MedicalHistory: "Allergic to penicillin. No other known conditions.",
			Notes:          "Patient is nervous about dental procedures. Requires extra reassurance. Came in for a checkup, found caries on tooth #3. Scheduled a filling. Also completed a crown on #18 last year. Tooth #30 was extracted two years ago due to severe decay.",
			AvatarURL:      "https://picsum.photos/seed/1/100/100",
			Odontogram: chartWith(map[int]entity.ToothStatus{
				3:  entity.ToothStatusCaries,
				14: entity.ToothStatusFilling,
				18: entity.ToothStatusCrown,
				30: entity.ToothStatusExtraction,
			}),
			Treatments: []entity.Treatment{
				{ID: 1, PatientID: 1, Date: "2023-10-15", Description: "Composite Filling - Tooth #14", Cost: decimal.NewFromInt(120), Paid: true, ToothIDs: []int{14}},
				{ID: 2, PatientID: 1, Date: "2023-03-01", Description: "Porcelain Crown - Tooth #18", Cost: decimal.NewFromInt(800), Paid: true, ToothIDs: []int{18}},
				{ID: 3, PatientID: 1, Date: "2022-07-22", Description: "Extraction - Tooth #30", Cost: decimal.NewFromInt(150), Paid: true, ToothIDs: []int{30}},
			},
			Version: 1,
		},
		{
			ID:             2,
			Name:           "Carlos Martinez",
			DOB:            "1992-11-10",
			Gender:         entity.GenderMale,
			Phone:          "+34 698 765 432",
			Email:          "carlos.martinez@example.com",
			Address:        "Avenida Siempre Viva 742, Barcelona",
			MedicalHistory: "No known allergies. Takes medication for high blood pressure.",
			Notes:          "Patient complains of sensitivity in the upper left quadrant. X-ray confirms need for root canal on tooth #12. Patient has an implant on #5 from a previous clinic.",
			AvatarURL:      "https://picsum.photos/seed/2/100/100",
			Odontogram: chartWith(map[int]entity.ToothStatus{
				5:  entity.ToothStatusImplant,
				12: entity.ToothStatusCaries,
				20: entity.ToothStatusFilling,
			}),
			Treatments: []entity.Treatment{
				{ID: 4, PatientID: 2, Date: "2023-08-05", Description: "Dental Implant - Tooth #5", Cost: decimal.NewFromInt(2500), Paid: true, ToothIDs: []int{5}},
				{ID: 5, PatientID: 2, Date: "2024-01-20", Description: "Regular Cleaning", Cost: decimal.NewFromInt(80), Paid: true},
			},
			Version: 1,
		},
		{
			ID:             3,
			Name:           "Sofia Rodriguez",
			DOB:            "2001-01-30",
			Gender:         entity.GenderFemale,
			Phone:          "+34 655 123 987",
			Email:          "sofia.rodriguez@example.com",
			Address:        "Plaza Mayor 1, Sevilla",
			MedicalHistory: "None.",
			Notes:          "Patient is interested in cosmetic dentistry, specifically teeth whitening. All wisdom teeth were extracted before she became a patient at this clinic. Patient has an implant on #19.",
			AvatarURL:      "https://picsum.photos/seed/3/100/100",
			Odontogram: chartWith(map[int]entity.ToothStatus{
				1:  entity.ToothStatusExtraction,
				16: entity.ToothStatusExtraction,
				17: entity.ToothStatusExtraction,
				32: entity.ToothStatusExtraction,
				19: entity.ToothStatusImplant,
			}),
			Treatments: []entity.Treatment{
				{ID: 6, PatientID: 3, Date: "2023-09-12", Description: "Dental Implant - Tooth #19", Cost: decimal.NewFromInt(2300), Paid: true, ToothIDs: []int{19}},
			},
			Version: 1,
		},
	}

	appointments := []*entity.Appointment{
		{ID: 1, PatientID: 1, PatientName: "Ana García", Date: today, Time: "09:00", Duration: 45, Reason: "Annual Checkup", Status: entity.AppointmentStatusConfirmed},
		{ID: 2, PatientID: 2, PatientName: "Carlos Martinez", Date: today, Time: "10:00", Duration: 60, Reason: "Root Canal", Status: entity.AppointmentStatusConfirmed},
		{ID: 3, PatientID: 3, PatientName: "Sofia Rodriguez", Date: today, Time: "11:30", Duration: 30, Reason: "Teeth Whitening", Status: entity.AppointmentStatusConfirmed},
		{ID: 4, PatientID: 1, PatientName: "Ana García", Date: "2023-10-15", Time: "14:00", Duration: 60, Reason: "Filling", Status: entity.AppointmentStatusCompleted},
	}

	plans := []*entity.TreatmentPlan{
		{
			ID:          1,
			PatientID:   1,
			PatientName: "Ana García",
			PlanName:    "Restauración Completa",
			Status:      entity.TreatmentPlanStatusInProgress,
			TotalCost:   decimal.NewFromInt(1570),
			Procedures: []entity.TreatmentPlanProcedure{
				{ID: 1, Description: "Composite Filling - Tooth #3", Cost: decimal.NewFromInt(150), Status: entity.ProcedureStatusPending},
				{ID: 2, Description: "Porcelain Crown - Tooth #18", Cost: decimal.NewFromInt(800), Status: entity.ProcedureStatusCompleted},
				{ID: 3, Description: "Limpieza Profunda", Cost: decimal.NewFromInt(200), Status: entity.ProcedureStatusCompleted},
				{ID: 4, Description: "Blanqueamiento Dental", Cost: decimal.NewFromInt(420), Status: entity.ProcedureStatusPending},
			},
		},
		{
			ID:          2,
			PatientID:   2,
			PatientName: "Carlos Martinez",
			PlanName:    "Implante y Canal Radicular",
			Status:      entity.TreatmentPlanStatusProposed,
			TotalCost:   decimal.NewFromInt(3600),
			Procedures: []entity.TreatmentPlanProcedure{
				{ID: 1, Description: "Root Canal - Tooth #12", Cost: decimal.NewFromInt(1100), Status: entity.ProcedureStatusPending},
				{ID: 2, Description: "Dental Implant - Tooth #5", Cost: decimal.NewFromInt(2500), Status: entity.ProcedureStatusCompleted},
			},
		},
		{
			ID:          3,
			PatientID:   3,
			PatientName: "Sofia Rodriguez",
			PlanName:    "Plan Cosmético",
			Status:      entity.TreatmentPlanStatusCompleted,
			TotalCost:   decimal.NewFromInt(2800),
			Procedures: []entity.TreatmentPlanProcedure{
				{ID: 1, Description: "Teeth Whitening", Cost: decimal.NewFromInt(500), Status: entity.ProcedureStatusCompleted},
				{ID: 2, Description: "Dental Implant - Tooth #19", Cost: decimal.NewFromInt(2300), Status: entity.ProcedureStatusCompleted},
			},
		},
	}

	for _, p := range patients {
		if err := repos.patients.Create(ctx, p); err != nil {
			return err
		}
	}
	for _, a := range appointments {
		if err := repos.appointments.Create(ctx, a); err != nil {
			return err
		}
	}
	for _, plan := range plans {
		if err := repos.plans.Create(ctx, plan); err != nil {
			return err
		}
	}

	logrus.Infof("Seeded demo data: %d patients, %d appointments, %d treatment plans", len(patients), len(appointments), len(plans))
	return nil
}

// chartWith builds a fresh odontogram and overrides the given teeth
func chartWith(overrides map[int]entity.ToothStatus) entity.Odontogram {
	chart := entity.NewOdontogram()
	for id, status := range overrides {
		chart[id] = entity.Tooth{ID: id, Status: status}
	}
	return chart
}
