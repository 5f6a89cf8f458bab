package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type AppointmentHandler struct {
	appointments ports.AppointmentService
	slots        ports.SlotService
}

func NewAppointmentHandler(appointments ports.AppointmentService, slots ports.SlotService) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		slots:        slots,
	}
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	DateTime string `json:"dateTime"`
	Reason   string `json:"reason"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Book handles POST /api/patients/appointments.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	appt, err := h.appointments.Book(r.Context(), middleware.SubjectID(r.Context()), req.DoctorID, req.DateTime, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Appointment booked successfully", appt)
}

// Cancel handles DELETE /api/patients/appointments/{id}.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appt, err := h.appointments.Cancel(r.Context(), middleware.SubjectID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment cancelled successfully", appt)
}

// UpdateStatus handles PATCH /api/doctors/appointments/{id}.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	appt, err := h.appointments.UpdateStatus(
		r.Context(),
		middleware.SubjectID(r.Context()),
		r.PathValue("id"),
		domain.AppointmentStatus(req.Status),
		req.Notes,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment status updated successfully", appt)
}

// GetForPatient handles GET /api/patients/appointments/{id}.
func (h *AppointmentHandler) GetForPatient(w http.ResponseWriter, r *http.Request) {
	appt, err := h.appointments.GetForPatient(r.Context(), middleware.SubjectID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, appt)
}

// ListForPatient handles GET /api/patients/appointments, most recent first.
func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.ListForPatient(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, appointments)
}

// ListForDoctor handles GET /api/doctors/appointments, most recent first.
func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.ListForDoctor(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, appointments)
}

// AvailableSlots handles GET /api/appointments/doctors/{id}/available-slots.
func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slots.AvailableSlots(r.Context(), r.PathValue("id"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, slots)
}
