package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PrescriptionHandler struct {
	prescriptions ports.PrescriptionService
}

func NewPrescriptionHandler(prescriptions ports.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions}
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.PrescriptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	p, err := h.prescriptions.Create(r.Context(), middleware.SubjectID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prescriptions, err := h.prescriptions.ListFor(ctx, middleware.SubjectID(ctx), middleware.CallerRole(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, prescriptions)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.prescriptions.Get(ctx, middleware.SubjectID(ctx), middleware.CallerRole(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *PrescriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in ports.PrescriptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	p, err := h.prescriptions.Update(r.Context(), middleware.SubjectID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *PrescriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.prescriptions.Delete(r.Context(), middleware.SubjectID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Prescription deleted successfully", nil)
}
