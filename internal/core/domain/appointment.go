package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ValidAppointmentStatus reports whether s is a member of the status enum.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted out of s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

const DefaultAppointmentReason = "General checkup"

// Appointment is jointly referenced by a patient and a doctor; its
// lifetime is independent of either profile. PatientID is the patient's
// user ID (the token subject); DoctorID is the doctor profile ID.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient"`
	DoctorID  string            `json:"doctor"`
	DateTime  time.Time         `json:"dateTime"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
