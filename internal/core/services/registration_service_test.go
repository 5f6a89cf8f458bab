package services_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/services"
	"github.com/clinicdesk/clinic-service/test/mocks"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

// testSigningKey returns a process-wide RSA key; generating one per test
// is too slow for the table-driven suites.
func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("failed to generate test key: %v", err)
		}
		testKey = key
	})
	return testKey
}

type registrationFixture struct {
	service     *services.RegistrationService
	userRepo    *mocks.MockUserRepository
	doctorRepo  *mocks.MockDoctorRepository
	patientRepo *mocks.MockPatientRepository
}

func newRegistrationFixture(t *testing.T) registrationFixture {
	userRepo := mocks.NewMockUserRepository()
	doctorRepo := mocks.NewMockDoctorRepository()
	patientRepo := mocks.NewMockPatientRepository()
	return registrationFixture{
		service:     services.NewRegistrationService(userRepo, doctorRepo, patientRepo, testSigningKey(t)),
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

func TestRegistrationService_Register_RolePerDomain(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		wantRole domain.Role
	}{
		{"patients_domain", "alice@patients.com", domain.RolePatient},
		{"doctors_domain", "bob@doctors.com", domain.RoleDoctor},
		{"admin_domain", "carol@admin.com", domain.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture(t)

			result, err := f.service.Register(context.Background(), "Test User", tt.email, "secret123")
			if err != nil {
				t.Fatalf("Register returned error: %v", err)
			}
			if result.User.Role != tt.wantRole {
				t.Errorf("expected role %s, got %s", tt.wantRole, result.User.Role)
			}
			if result.Token == "" {
				t.Error("expected a signed token")
			}
			if result.User.PasswordHash == "secret123" {
				t.Error("password must not be stored in plain text")
			}
		})
	}
}

func TestRegistrationService_Register_CreatesRoleProfile(t *testing.T) {
	t.Run("doctor_gets_default_profile", func(t *testing.T) {
		f := newRegistrationFixture(t)

		result, err := f.service.Register(context.Background(), "Dr. Smith", "smith@doctors.com", "secret123")
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}

		if len(f.doctorRepo.CreateCalls) != 1 {
			t.Fatalf("expected one doctor profile created, got %d", len(f.doctorRepo.CreateCalls))
		}
		profile := f.doctorRepo.CreateCalls[0]
		if profile.UserID != result.User.ID {
			t.Error("doctor profile not linked to the created user")
		}
		if profile.Specialization != "General Practice" {
			t.Errorf("expected default specialization, got %q", profile.Specialization)
		}
		if profile.ConsultationFee != 50 {
			t.Errorf("expected default consultation fee 50, got %v", profile.ConsultationFee)
		}
		if len(profile.Availability) != 3 {
			t.Errorf("expected 3 default availability entries, got %d", len(profile.Availability))
		}
	})

	t.Run("patient_gets_default_profile", func(t *testing.T) {
		f := newRegistrationFixture(t)

		result, err := f.service.Register(context.Background(), "Alice", "alice@patients.com", "secret123")
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}

		if len(f.patientRepo.CreateCalls) != 1 {
			t.Fatalf("expected one patient profile created, got %d", len(f.patientRepo.CreateCalls))
		}
		profile := f.patientRepo.CreateCalls[0]
		if profile.UserID != result.User.ID {
			t.Error("patient profile not linked to the created user")
		}
		if profile.BloodGroup != "Not Specified" {
			t.Errorf("expected default blood group, got %q", profile.BloodGroup)
		}
	})

	t.Run("admin_gets_no_profile", func(t *testing.T) {
		f := newRegistrationFixture(t)

		if _, err := f.service.Register(context.Background(), "Carol", "carol@admin.com", "secret123"); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if len(f.doctorRepo.CreateCalls) != 0 || len(f.patientRepo.CreateCalls) != 0 {
			t.Error("admin registration must not create a role profile")
		}
	})
}

func TestRegistrationService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing_name", "", "alice@patients.com", "secret123"},
		{"missing_email", "Alice", "", "secret123"},
		{"missing_password", "Alice", "alice@patients.com", ""},
		{"unknown_email_domain", "Alice", "alice@example.com", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture(t)

			_, err := f.service.Register(context.Background(), tt.userName, tt.email, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := domain.KindOf(err); kind != domain.KindInvalidArgument {
				t.Errorf("expected invalid_argument, got %v", kind)
			}
			if f.userRepo.Count() != 0 {
				t.Error("no user should be created on validation failure")
			}
		})
	}
}

func TestRegistrationService_Register_DuplicateEmail(t *testing.T) {
	f := newRegistrationFixture(t)
	f.userRepo.SeedUser(&domain.User{ID: "u1", Email: "alice@patients.com", Role: domain.RolePatient})

	_, err := f.service.Register(context.Background(), "Alice", "alice@patients.com", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := domain.MessageOf(err); msg != "User with this email already exists" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestRegistrationService_Register_RollsBackUserOnProfileFailure(t *testing.T) {
	f := newRegistrationFixture(t)
	f.patientRepo.CreateError = context.DeadlineExceeded

	_, err := f.service.Register(context.Background(), "Alice", "alice@patients.com", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := domain.KindOf(err); kind != domain.KindInternal {
		t.Errorf("expected internal, got %v", kind)
	}
	if len(f.userRepo.DeleteCalls) != 1 {
		t.Fatalf("expected the created user to be rolled back, delete calls: %d", len(f.userRepo.DeleteCalls))
	}
	if f.userRepo.Count() != 0 {
		t.Error("user should not survive a failed profile creation")
	}
}
