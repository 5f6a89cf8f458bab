package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, response{Success: true, Message: message, Data: data})
}

// writeError maps the error taxonomy to transport statuses in one place.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch domain.KindOf(err) {
	case domain.KindUnauthenticated:
		status = http.StatusUnauthorized
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidArgument, domain.KindInvalidState:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		log.Printf("handler: internal error: %v", err)
	}
	writeJSON(w, status, response{Success: false, Message: domain.MessageOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("handler: failed to write response: %v", err)
	}
}
