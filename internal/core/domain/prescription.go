package domain

import "time"

type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "active"
	PrescriptionCompleted PrescriptionStatus = "completed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

func ValidPrescriptionStatus(s PrescriptionStatus) bool {
	switch s {
	case PrescriptionActive, PrescriptionCompleted, PrescriptionCancelled:
		return true
	}
	return false
}

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type Prescription struct {
	ID          string             `json:"id"`
	PatientID   string             `json:"patient"`
	DoctorID    string             `json:"doctor"`
	Medications []Medication       `json:"medications"`
	Diagnosis   string             `json:"diagnosis"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Status      PrescriptionStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}
