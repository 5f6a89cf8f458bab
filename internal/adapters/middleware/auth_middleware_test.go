package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/test/mocks"
)

var signingKey = mustGenerateKey()

func mustGenerateKey() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func guardedRequest(guard http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	mw := middleware.NewAuthMiddleware(&signingKey.PublicKey, mocks.NewMockTokenStore())

	var gotSubject string
	var gotRole domain.Role
	guard := mw.RequireRole(domain.RolePatient, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = middleware.SubjectID(r.Context())
		gotRole = middleware.CallerRole(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "no_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed_header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage_token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired_token",
			authHeader: "Bearer " + signedToken(t, jwt.MapClaims{
				"sub": "u1", "role": "patient", "exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong_role",
			authHeader: "Bearer " + signedToken(t, jwt.MapClaims{
				"sub": "u1", "role": "doctor",
			}),
			wantStatus: http.StatusForbidden,
		},
		{
			name: "missing_role_claim",
			authHeader: "Bearer " + signedToken(t, jwt.MapClaims{
				"sub": "u1",
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid_token",
			authHeader: "Bearer " + signedToken(t, jwt.MapClaims{
				"sub": "u1", "role": "patient",
			}),
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := guardedRequest(guard, tt.authHeader)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusNoContent {
				if gotSubject != "u1" {
					t.Errorf("expected subject u1, got %q", gotSubject)
				}
				if gotRole != domain.RolePatient {
					t.Errorf("expected role patient, got %q", gotRole)
				}
			}
		})
	}
}

func TestAuthMiddleware_SubjectClaimVariants(t *testing.T) {
	// Tokens minted by earlier versions of the stack carried the subject
	// under different claim names; all of them must resolve.
	mw := middleware.NewAuthMiddleware(&signingKey.PublicKey, nil)

	for _, claimName := range []string{"sub", "userId", "id", "_id"} {
		t.Run(claimName, func(t *testing.T) {
			var gotSubject string
			guard := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject = middleware.SubjectID(r.Context())
			}))

			token := signedToken(t, jwt.MapClaims{claimName: "u42", "role": "patient"})
			rec := guardedRequest(guard, "Bearer "+token)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if gotSubject != "u42" {
				t.Errorf("expected subject u42, got %q", gotSubject)
			}
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	tokens := mocks.NewMockTokenStore()
	mw := middleware.NewAuthMiddleware(&signingKey.PublicKey, tokens)

	guard := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	token := signedToken(t, jwt.MapClaims{"sub": "u1", "role": "patient"})
	if err := tokens.Blacklist(context.Background(), token, time.Hour); err != nil {
		t.Fatalf("failed to blacklist token: %v", err)
	}

	rec := guardedRequest(guard, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RequireAnyRole(t *testing.T) {
	mw := middleware.NewAuthMiddleware(&signingKey.PublicKey, nil)
	guard := mw.RequireAnyRole([]domain.Role{domain.RoleDoctor, domain.RoleAdmin},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for role, wantStatus := range map[string]int{
		"doctor":  http.StatusOK,
		"admin":   http.StatusOK,
		"patient": http.StatusForbidden,
	} {
		token := signedToken(t, jwt.MapClaims{"sub": "u1", "role": role})
		rec := guardedRequest(guard, "Bearer "+token)
		if rec.Code != wantStatus {
			t.Errorf("role %s: expected %d, got %d", role, wantStatus, rec.Code)
		}
	}
}

func TestAuthMiddleware_RejectsNonRSAToken(t *testing.T) {
	mw := middleware.NewAuthMiddleware(&signingKey.PublicKey, nil)
	guard := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "patient", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("hmac-secret"))
	if err != nil {
		t.Fatalf("failed to sign HMAC token: %v", err)
	}

	rec := guardedRequest(guard, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for HMAC-signed token, got %d", rec.Code)
	}
}
