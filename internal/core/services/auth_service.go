package services

import (
	"context"
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type AuthService struct {
	userRepo    ports.UserRepository
	doctorRepo  ports.DoctorRepository
	patientRepo ports.PatientRepository
	tokens      ports.TokenStore
	privateKey  *rsa.PrivateKey
	publicKey   *rsa.PublicKey
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepo ports.UserRepository,
	doctorRepo ports.DoctorRepository,
	patientRepo ports.PatientRepository,
	tokens ports.TokenStore,
	privateKey *rsa.PrivateKey,
	publicKey *rsa.PublicKey,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		tokens:      tokens,
		privateKey:  privateKey,
		publicKey:   publicKey,
	}
}

// Login verifies the password and issues a signed credential. The role
// derived from the email domain must agree with the stored role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "Please provide email and password")
	}

	role, err := domain.RoleFromEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewError(domain.KindUnauthenticated, "Invalid credentials - User not found")
		}
		return nil, err
	}

	if user.Role != role {
		return nil, domain.NewError(domain.KindUnauthenticated, "Invalid credentials - Email domain doesn't match user role")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewError(domain.KindUnauthenticated, "Invalid credentials - Password incorrect")
	}

	token, err := signToken(s.privateKey, user)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to sign token", err)
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.publicKey, nil
	})
	if err != nil || !parsed.Valid {
		return domain.NewError(domain.KindUnauthenticated, "Token is not valid")
	}

	ttl := tokenLifetime
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.tokens.Blacklist(ctx, tokenString, ttl); err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to revoke token", err)
	}
	return nil
}

// Profile returns the user together with the linked role-profile IDs.
func (s *AuthService) Profile(ctx context.Context, userID string) (*ports.UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &ports.UserProfile{User: user}

	switch user.Role {
	case domain.RoleDoctor:
		if doctor, err := s.doctorRepo.FindByUserID(ctx, userID); err == nil {
			profile.DoctorID = doctor.ID
		}
	case domain.RolePatient:
		if patient, err := s.patientRepo.FindByUserID(ctx, userID); err == nil {
			profile.PatientID = patient.ID
		}
	}

	return profile, nil
}
