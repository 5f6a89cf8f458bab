package services_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/services"
	"github.com/clinicdesk/clinic-service/test/mocks"
)

type authFixture struct {
	service     *services.AuthService
	userRepo    *mocks.MockUserRepository
	doctorRepo  *mocks.MockDoctorRepository
	patientRepo *mocks.MockPatientRepository
	tokens      *mocks.MockTokenStore
}

func newAuthFixture(t *testing.T) authFixture {
	key := testSigningKey(t)
	userRepo := mocks.NewMockUserRepository()
	doctorRepo := mocks.NewMockDoctorRepository()
	patientRepo := mocks.NewMockPatientRepository()
	tokens := mocks.NewMockTokenStore()
	return authFixture{
		service:     services.NewAuthService(userRepo, doctorRepo, patientRepo, tokens, key, &key.PublicKey),
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		tokens:      tokens,
	}
}

func seedCredentials(t *testing.T, f authFixture, id, email, password string, role domain.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	f.userRepo.SeedUser(&domain.User{ID: id, Email: email, Role: role, PasswordHash: string(hash)})
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	seedCredentials(t, f, "u1", "alice@patients.com", "secret123", domain.RolePatient)

	result, err := f.service.Login(context.Background(), "alice@patients.com", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
	if result.User.ID != "u1" {
		t.Errorf("expected user u1, got %s", result.User.ID)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantKind domain.Kind
		wantMsg  string
	}{
		{
			name:     "missing_credentials",
			email:    "",
			password: "",
			wantKind: domain.KindInvalidArgument,
			wantMsg:  "Please provide email and password",
		},
		{
			name:     "unknown_email_domain",
			email:    "alice@example.com",
			password: "secret123",
			wantKind: domain.KindInvalidArgument,
			wantMsg:  "Invalid email domain. Use @patients.com, @doctors.com, or @admin.com",
		},
		{
			name:     "unknown_user",
			email:    "nobody@patients.com",
			password: "secret123",
			wantKind: domain.KindUnauthenticated,
			wantMsg:  "Invalid credentials - User not found",
		},
		{
			name:     "wrong_password",
			email:    "alice@patients.com",
			password: "wrong-password",
			wantKind: domain.KindUnauthenticated,
			wantMsg:  "Invalid credentials - Password incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			seedCredentials(t, f, "u1", "alice@patients.com", "secret123", domain.RolePatient)

			_, err := f.service.Login(context.Background(), tt.email, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := domain.KindOf(err); kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, kind)
			}
			if msg := domain.MessageOf(err); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestAuthService_Login_RoleDomainMismatch(t *testing.T) {
	// A user whose stored role disagrees with the email domain cannot log
	// in, even with the right password.
	f := newAuthFixture(t)
	seedCredentials(t, f, "u1", "mallory@doctors.com", "secret123", domain.RolePatient)

	_, err := f.service.Login(context.Background(), "mallory@doctors.com", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := domain.KindOf(err); kind != domain.KindUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", kind)
	}
	if msg := domain.MessageOf(err); msg != "Invalid credentials - Email domain doesn't match user role" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	f := newAuthFixture(t)
	seedCredentials(t, f, "u1", "alice@patients.com", "secret123", domain.RolePatient)

	result, err := f.service.Login(context.Background(), "alice@patients.com", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := f.service.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	revoked, err := f.tokens.IsBlacklisted(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("IsBlacklisted returned error: %v", err)
	}
	if !revoked {
		t.Error("expected token to be blacklisted after logout")
	}
}

func TestAuthService_Logout_RejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.Logout(context.Background(), "not-a-token")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := domain.KindOf(err); kind != domain.KindUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", kind)
	}
}

func TestAuthService_Profile_IncludesRoleProfileIDs(t *testing.T) {
	f := newAuthFixture(t)
	seedCredentials(t, f, "u1", "smith@doctors.com", "secret123", domain.RoleDoctor)
	f.doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "u1"})

	profile, err := f.service.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.DoctorID != "doc-1" {
		t.Errorf("expected linked doctor profile, got %q", profile.DoctorID)
	}
	if profile.PatientID != "" {
		t.Errorf("expected no patient profile, got %q", profile.PatientID)
	}
}
