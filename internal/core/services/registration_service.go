package services

import (
	"context"
	"crypto/rsa"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type RegistrationService struct {
	userRepo    ports.UserRepository
	doctorRepo  ports.DoctorRepository
	patientRepo ports.PatientRepository
	privateKey  *rsa.PrivateKey
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	userRepo ports.UserRepository,
	doctorRepo ports.DoctorRepository,
	patientRepo ports.PatientRepository,
	privateKey *rsa.PrivateKey,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		privateKey:  privateKey,
	}
}

// Register creates the user and its role profile. Profile creation is a
// second step after the user insert; when it fails the just-created user
// is deleted best-effort rather than wrapped in a transaction.
func (s *RegistrationService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "Please provide name, email and password")
	}

	role, err := domain.RoleFromEmail(email)
	if err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.NewError(domain.KindInvalidArgument, "User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to hash password", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, user); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			log.Printf("registration: failed to roll back user %s: %v", user.ID, delErr)
		}
		return nil, domain.WrapError(domain.KindInternal, "Failed to create "+string(role)+" profile", err)
	}

	token, err := signToken(s.privateKey, &user)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to sign token", err)
	}

	return &ports.AuthResult{Token: token, User: &user}, nil
}

func (s *RegistrationService) createProfile(ctx context.Context, user domain.User) error {
	switch user.Role {
	case domain.RoleDoctor:
		return s.doctorRepo.Create(ctx, defaultDoctorProfile(user.ID))
	case domain.RolePatient:
		return s.patientRepo.Create(ctx, defaultPatientProfile(user.ID))
	default:
		// Admins have no role profile.
		return nil
	}
}

func defaultDoctorProfile(userID string) domain.Doctor {
	return domain.Doctor{
		ID:              uuid.NewString(),
		UserID:          userID,
		Specialization:  "General Practice",
		Qualifications:  []string{"MD"},
		Experience:      0,
		ConsultationFee: 50,
		Availability: []domain.AvailabilitySlot{
			{Day: "Monday", StartTime: "09:00", EndTime: "17:00"},
			{Day: "Tuesday", StartTime: "09:00", EndTime: "17:00"},
			{Day: "Wednesday", StartTime: "09:00", EndTime: "17:00"},
		},
		Ratings:   []domain.Rating{},
		CreatedAt: time.Now(),
	}
}

func defaultPatientProfile(userID string) domain.Patient {
	now := time.Now()
	return domain.Patient{
		ID:          uuid.NewString(),
		UserID:      userID,
		DateOfBirth: now,
		BloodGroup:  "Not Specified",
		Allergies:   []string{"No known allergies"},
		MedicalHistory: []domain.MedicalHistoryEntry{
			{Condition: "General Health", DiagnosedDate: now, Notes: "Initial health record"},
		},
		CreatedAt: now,
	}
}
