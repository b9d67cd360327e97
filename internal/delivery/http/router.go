package http

import (
	"net/http"

	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	patientHandler       *handler.PatientHandler
	appointmentHandler   *handler.AppointmentHandler
	billingHandler       *handler.BillingHandler
	treatmentPlanHandler *handler.TreatmentPlanHandler
	corsMiddleware       *middleware.CORSMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	billingHandler *handler.BillingHandler,
	treatmentPlanHandler *handler.TreatmentPlanHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		patientHandler:       patientHandler,
		appointmentHandler:   appointmentHandler,
		billingHandler:       billingHandler,
		treatmentPlanHandler: treatmentPlanHandler,
		corsMiddleware:       corsMiddleware,
		loggingMiddleware:    loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient directory and records
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}/odontogram/{toothId}", r.patientHandler.CycleTooth).Methods(http.MethodPatch)
	api.HandleFunc("/patients/{id}/files", r.patientHandler.UploadFile).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/summary", r.patientHandler.GenerateSummary).Methods(http.MethodPost)

	// Billing ledger per patient
	api.HandleFunc("/patients/{id}/billing", r.billingHandler.GetStatement).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/billing/charges", r.billingHandler.AddCharge).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/billing/charges/{treatmentId}/paid", r.billingHandler.TogglePaid).Methods(http.MethodPatch)

	// Appointment book and calendar
	api.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/today", r.appointmentHandler.GetTodayAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/layout/{date}", r.appointmentHandler.GetDayLayout).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Treatment plans
	api.HandleFunc("/treatment-plans", r.treatmentPlanHandler.CreatePlan).Methods(http.MethodPost)
	api.HandleFunc("/treatment-plans", r.treatmentPlanHandler.GetAllPlans).Methods(http.MethodGet)
	api.HandleFunc("/treatment-plans/draft", r.treatmentPlanHandler.DraftWithAI).Methods(http.MethodPost)
	api.HandleFunc("/treatment-plans/{id}/status", r.treatmentPlanHandler.UpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/treatment-plans/{id}/procedures/{procedureId}/status", r.treatmentPlanHandler.UpdateProcedureStatus).Methods(http.MethodPatch)
	api.HandleFunc("/patients/{id}/treatment-plans", r.treatmentPlanHandler.GetPlansByPatient).Methods(http.MethodGet)

	// Procedure catalog
	api.HandleFunc("/catalog/procedures", r.treatmentPlanHandler.GetProcedureCatalog).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
