package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

// AuthMiddleware resolves {subjectID, role} from the bearer credential
// before any request reaches business logic.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	tokens    ports.TokenStore
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, tokens ports.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		tokens:    tokens,
	}
}

type contextKey string

const (
	subjectIDKey contextKey = "subjectID"
	roleKey      contextKey = "role"
)

// SubjectID returns the canonical caller identity resolved by the guard.
func SubjectID(ctx context.Context) string {
	id, _ := ctx.Value(subjectIDKey).(string)
	return id
}

// CallerRole returns the role resolved from the credential.
func CallerRole(ctx context.Context) domain.Role {
	role, _ := ctx.Value(roleKey).(domain.Role)
	return role
}

// Authenticate admits any request with a valid credential.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return m.RequireAnyRole(nil, next)
}

// RequireRole admits only callers holding exactly the given role.
func (m *AuthMiddleware) RequireRole(role domain.Role, next http.Handler) http.Handler {
	return m.RequireAnyRole([]domain.Role{role}, next)
}

// RequireAnyRole verifies the credential and, when roles is non-empty,
// denies callers whose role is not in the set.
func (m *AuthMiddleware) RequireAnyRole(roles []domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			log.Printf("auth: token parse error: %v", err)
			writeAuthError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		if m.tokens != nil {
			blacklisted, err := m.tokens.IsBlacklisted(r.Context(), tokenString)
			if err != nil {
				log.Printf("auth: blacklist check failed: %v", err)
				writeAuthError(w, http.StatusUnauthorized, "Token is not valid")
				return
			}
			if blacklisted {
				writeAuthError(w, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		subjectID := normalizeSubject(claims)
		if subjectID == "" {
			writeAuthError(w, http.StatusUnauthorized, "Token is missing user identity")
			return
		}

		roleClaim, _ := claims["role"].(string)
		if roleClaim == "" {
			writeAuthError(w, http.StatusUnauthorized, "Token is missing role")
			return
		}
		role := domain.Role(roleClaim)

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				writeAuthError(w, http.StatusForbidden, "Not authorized to access this route")
				return
			}
		}

		ctx := context.WithValue(r.Context(), subjectIDKey, subjectID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// normalizeSubject collapses the historical claim-name variants into one
// canonical subject so downstream code never re-derives identity.
func normalizeSubject(claims jwt.MapClaims) string {
	for _, name := range []string{"sub", "userId", "id", "_id"} {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
