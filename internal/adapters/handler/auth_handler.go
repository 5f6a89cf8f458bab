package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type AuthHandler struct {
	authService         ports.AuthService
	registrationService ports.RegistrationService
}

func NewAuthHandler(auth ports.AuthService, registration ports.RegistrationService) *AuthHandler {
	return &AuthHandler{
		authService:         auth,
		registrationService: registration,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	result, err := h.registrationService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Registration successful!",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidArgument, "Invalid request payload"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		writeError(w, domain.NewError(domain.KindUnauthenticated, "No token, authorization denied"))
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.authService.Profile(r.Context(), middleware.SubjectID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}
