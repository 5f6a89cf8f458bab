package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type DoctorHandler struct {
	doctors ports.DoctorService
}

func NewDoctorHandler(doctors ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	doctors, total, err := h.doctors.List(r.Context(), r.URL.Query().Get("specialization"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"doctors":     doctors,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctors.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

// Profile resolves the caller's own doctor profile from the credential.
func (h *DoctorHandler) Profile(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctors.GetByUserID(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

// GetByUser looks up a doctor profile by its owning user's ID.
func (h *DoctorHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctors.GetByUserID(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Specializations(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.doctors.Specializations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, specializations)
}

func (h *DoctorHandler) Availability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.doctors.Availability(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, availability)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update ports.DoctorUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	ctx := r.Context()
	doctor, err := h.doctors.Update(ctx, middleware.SubjectID(ctx), middleware.CallerRole(ctx), r.PathValue("id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

type UpdateAvailabilityRequest struct {
	Availability []domain.AvailabilitySlot `json:"availability"`
}

func (h *DoctorHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	ctx := r.Context()
	doctor, err := h.doctors.UpdateAvailability(ctx, middleware.SubjectID(ctx), middleware.CallerRole(ctx), r.PathValue("id"), req.Availability)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

type RateDoctorRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (h *DoctorHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req RateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	ctx := r.Context()
	doctor, err := h.doctors.Rate(ctx, middleware.SubjectID(ctx), r.PathValue("id"), req.Rating, req.Review)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.doctors.Stats(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
