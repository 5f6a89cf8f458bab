package ports

import (
	"context"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
)

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UserProfile is the authenticated user's view of itself, including the
// linked role-profile IDs when they exist.
type UserProfile struct {
	User      *domain.User `json:"user"`
	DoctorID  string       `json:"doctorId,omitempty"`
	PatientID string       `json:"patientId,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*UserProfile, error)
}

type RegistrationService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
}

type AppointmentService interface {
	Book(ctx context.Context, patientID, doctorID, dateTime, reason string) (*domain.Appointment, error)
	Cancel(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, doctorID, appointmentID string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error)
	GetForPatient(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListForDoctor(ctx context.Context, doctorUserID string) ([]domain.Appointment, error)
}

type SlotService interface {
	AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error)
}

type DoctorUpdate struct {
	Specialization  *string  `json:"specialization"`
	Qualifications  []string `json:"qualifications"`
	Experience      *int     `json:"experience"`
	ConsultationFee *float64 `json:"consultationFee"`
}

type DoctorStats struct {
	AverageRating     float64         `json:"averageRating"`
	TotalReviews      int             `json:"totalReviews"`
	RecentReviews     []domain.Rating `json:"recentReviews"`
	TotalAppointments int             `json:"totalAppointments"`
}

type DoctorService interface {
	List(ctx context.Context, specialization string, page, limit int) ([]domain.Doctor, int, error)
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	Specializations(ctx context.Context) ([]string, error)
	Availability(ctx context.Context, doctorID string) ([]domain.AvailabilitySlot, error)
	Update(ctx context.Context, subjectID string, role domain.Role, doctorID string, update DoctorUpdate) (*domain.Doctor, error)
	UpdateAvailability(ctx context.Context, subjectID string, role domain.Role, doctorID string, slots []domain.AvailabilitySlot) (*domain.Doctor, error)
	Rate(ctx context.Context, patientID, doctorID string, score int, review string) (*domain.Doctor, error)
	Stats(ctx context.Context, doctorID string) (*DoctorStats, error)
}

type DashboardStats struct {
	AppointmentsCount    int `json:"appointmentsCount"`
	PrescriptionsCount   int `json:"prescriptionsCount"`
	UpcomingAppointments int `json:"upcomingAppointments"`
}

type PatientDashboard struct {
	Appointments  []domain.Appointment  `json:"appointments"`
	Prescriptions []domain.Prescription `json:"prescriptions"`
	Stats         DashboardStats        `json:"stats"`
}

type PatientService interface {
	Dashboard(ctx context.Context, patientUserID string) (*PatientDashboard, error)
	MedicalRecords(ctx context.Context, patientUserID string) ([]domain.MedicalRecord, error)
	List(ctx context.Context, page, limit int) ([]domain.Patient, int, error)
}

type PrescriptionInput struct {
	PatientID   string                    `json:"patientId"`
	Medications []domain.Medication       `json:"medications"`
	Diagnosis   string                    `json:"diagnosis"`
	StartDate   time.Time                 `json:"startDate"`
	EndDate     time.Time                 `json:"endDate"`
	Notes       string                    `json:"notes"`
	Status      domain.PrescriptionStatus `json:"status"`
}

type PrescriptionService interface {
	Create(ctx context.Context, doctorUserID string, in PrescriptionInput) (*domain.Prescription, error)
	ListFor(ctx context.Context, subjectID string, role domain.Role) ([]domain.Prescription, error)
	Get(ctx context.Context, subjectID string, role domain.Role, id string) (*domain.Prescription, error)
	Update(ctx context.Context, doctorUserID, id string, in PrescriptionInput) (*domain.Prescription, error)
	Delete(ctx context.Context, doctorUserID, id string) error
}
