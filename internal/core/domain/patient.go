package domain

import "time"

type MedicalHistoryEntry struct {
	Condition     string    `json:"condition"`
	DiagnosedDate time.Time `json:"diagnosedDate"`
	Notes         string    `json:"notes"`
}

type MedicalRecord struct {
	DoctorID     string    `json:"doctor"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment"`
	Prescription string    `json:"prescription"`
	Notes        string    `json:"notes"`
	Attachments  []string  `json:"attachments"`
	Date         time.Time `json:"date"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type Patient struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user"`
	DateOfBirth      time.Time             `json:"dateOfBirth"`
	BloodGroup       string                `json:"bloodGroup"`
	Allergies        []string              `json:"allergies"`
	MedicalHistory   []MedicalHistoryEntry `json:"medicalHistory"`
	MedicalRecords   []MedicalRecord       `json:"medicalRecords"`
	EmergencyContact EmergencyContact      `json:"emergencyContact"`
	CreatedAt        time.Time             `json:"created_at"`
}
