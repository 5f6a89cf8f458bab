package handler

import (
	"net/http"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PatientHandler struct {
	patients ports.PatientService
}

func NewPatientHandler(patients ports.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// Dashboard handles GET /api/patients/dashboard; appointments are ordered
// soonest first here, unlike the plain appointment listing.
func (h *PatientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.patients.Dashboard(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, dashboard)
}

func (h *PatientHandler) MedicalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.patients.MedicalRecords(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	patients, total, err := h.patients.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"patients":    patients,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}
