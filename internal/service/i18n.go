package service

// Translator resolves message keys to localized strings. The domain layer
// returns structured values only; the delivery layer runs its envelope
// messages through this lookup. Unresolved keys fall back to the key itself.
type Translator struct {
	entries map[string]string
}

func NewTranslator(entries map[string]string) *Translator {
	if entries == nil {
		entries = map[string]string{}
	}
	return &Translator{entries: entries}
}

// NewEnglishTranslator returns the default English bundle
func NewEnglishTranslator() *Translator {
	return NewTranslator(map[string]string{
		"patient.created":           "Patient created successfully",
		"patient.updated":           "Patient updated successfully",
		"patient.retrieved":         "Patient retrieved successfully",
		"patient.list":              "Patients retrieved successfully",
		"patient.tooth_cycled":      "Tooth status updated successfully",
		"patient.file_attached":     "File attached successfully",
		"patient.summary_generated": "Summary generated successfully",
		"billing.charge_added":      "Charge added successfully",
		"billing.paid_toggled":      "Payment status updated successfully",
		"billing.statement":         "Billing statement retrieved successfully",
		"appointment.booked":        "Appointment booked successfully",
		"appointment.list":          "Appointments retrieved successfully",
		"appointment.layout":        "Calendar layout computed successfully",
		"appointment.status":        "Appointment status updated successfully",
		"plan.drafted":              "Treatment plan drafted successfully",
		"plan.created":              "Treatment plan created successfully",
		"plan.list":                 "Treatment plans retrieved successfully",
		"plan.status":               "Treatment plan status updated successfully",
		"plan.procedure_status":     "Procedure status updated successfully",
		"catalog.procedures":        "Procedure catalog retrieved successfully",
	})
}

// T returns the localized string for key, or the key itself if unresolved
func (t *Translator) T(key string) string {
	if msg, ok := t.entries[key]; ok {
		return msg
	}
	return key
}
