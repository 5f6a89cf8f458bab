package ports

import (
	"context"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor domain.Doctor) error
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context, specialization string, offset, limit int) ([]domain.Doctor, int, error)
	Specializations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, doctor domain.Doctor) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient domain.Patient) error
	FindByUserID(ctx context.Context, userID string) (*domain.Patient, error)
	List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error)
}

type AppointmentRepository interface {
	// Create inserts the appointment and the outbox event in one transaction.
	Create(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error
	// Update persists a status/notes change together with its outbox event.
	Update(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error
	// FindForPatient scopes the lookup to the owning patient; foreign IDs
	// surface as not found so existence is not leaked.
	FindForPatient(ctx context.Context, id, patientID string) (*domain.Appointment, error)
	FindForDoctor(ctx context.Context, id, doctorID string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, ascending bool) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error)
	ListScheduledBetween(ctx context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error)
	CountByDoctor(ctx context.Context, doctorID string) (int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p domain.Prescription) error
	FindByID(ctx context.Context, id string) (*domain.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error)
	ListAll(ctx context.Context) ([]domain.Prescription, error)
	Update(ctx context.Context, p domain.Prescription) error
	Delete(ctx context.Context, id string) error
}

// TokenStore records revoked credentials until their natural expiry.
type TokenStore interface {
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
