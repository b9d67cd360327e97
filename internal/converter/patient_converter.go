package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its summary DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		DOB:            patient.DOB,
		Gender:         patient.Gender,
		Phone:          patient.Phone,
		Email:          patient.Email,
		Address:        patient.Address,
		MedicalHistory: patient.MedicalHistory,
		Notes:          patient.Notes,
		AvatarURL:      patient.AvatarURL,
		Version:        patient.Version,
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}

// PatientsToResponses converts a list of patients
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}

// PatientToDetailResponse builds the full aggregate view, joining in the
// patient's appointments from the global collection.
func PatientToDetailResponse(patient *entity.Patient, appointments []entity.Appointment) *dto.PatientDetailResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientDetailResponse{
		PatientResponse: *PatientToResponse(patient),
		Odontogram:      patient.Odontogram,
		Treatments:      TreatmentsToResponses(patient.Treatments),
		Appointments:    AppointmentsToResponses(appointments),
		Files:           ClinicalFilesToResponses(patient.Files),
		Total:           patient.BillingTotal(),
		Outstanding:     patient.OutstandingBalance(),
	}
}

// TreatmentToResponse converts a billing line item
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:          treatment.ID,
		Date:        treatment.Date,
		Description: treatment.Description,
		Cost:        treatment.Cost,
		Paid:        treatment.Paid,
		ToothIDs:    treatment.ToothIDs,
	}
}

func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	responses := make([]dto.TreatmentResponse, 0, len(treatments))
	for i := range treatments {
		responses = append(responses, *TreatmentToResponse(&treatments[i]))
	}
	return responses
}

// ClinicalFileToResponse converts an attachment record
func ClinicalFileToResponse(file *entity.ClinicalFile) *dto.ClinicalFileResponse {
	if file == nil {
		return nil
	}

	return &dto.ClinicalFileResponse{
		ID:         file.ID,
		Name:       file.Name,
		Type:       string(file.Type),
		URL:        file.URL,
		UploadDate: file.UploadDate,
	}
}

func ClinicalFilesToResponses(files []entity.ClinicalFile) []dto.ClinicalFileResponse {
	responses := make([]dto.ClinicalFileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, *ClinicalFileToResponse(&files[i]))
	}
	return responses
}
