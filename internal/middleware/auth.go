// Package middleware provides HTTP middleware for the plant tracker API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
	"github.com/ckonkol1/plant-tracker/internal/httputil"
	"github.com/ckonkol1/plant-tracker/internal/logging"
)

// Claims represents the JWT claims accepted by the API. Admin marks the
// identity as allowed to call mutation endpoints.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type adminContextKey struct{}

// AuthMiddleware provides JWT bearer-token authentication.
type AuthMiddleware struct {
	secret    []byte
	logger    *logging.Logger
	skipPaths map[string]bool
}

// NewAuthMiddleware creates an authentication middleware validating HMAC
// signed tokens. Requests to skipPaths bypass authentication entirely.
func NewAuthMiddleware(secret []byte, logger *logging.Logger, skipPaths []string) *AuthMiddleware {
	if logger == nil {
		logger = logging.NewDefault("auth")
	}
	skip := make(map[string]bool)
	for _, path := range skipPaths {
		skip[path] = true
	}

	return &AuthMiddleware{
		secret:    secret,
		logger:    logger,
		skipPaths: skip,
	}
}

// Handler returns the middleware handler.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("Missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteError(w, r, apperrors.Unauthorized("Invalid Authorization header format"))
			return
		}

		claims, err := m.validateToken(parts[1])
		if err != nil {
			m.logger.WithContext(r.Context()).WithError(err).Warn("token validation failed")
			httputil.WriteError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), logging.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, adminContextKey{}, claims.Admin)
		if claims.Admin {
			ctx = context.WithValue(ctx, logging.RoleKey, "admin")
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.InvalidToken(nil).WithDetails("method", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperrors.InvalidToken(err)
	}
	if !token.Valid {
		return nil, apperrors.InvalidToken(nil)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.InvalidToken(nil).WithDetails("reason", "invalid claims type")
	}
	if claims.UserID == "" {
		return nil, apperrors.InvalidToken(nil).WithDetails("reason", "missing user_id claim")
	}
	return claims, nil
}

// GetUserID extracts the authenticated user ID from the context.
func GetUserID(ctx context.Context) string {
	return logging.GetUserID(ctx)
}

// IsAdmin reports whether the authenticated identity carries the admin claim.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminContextKey{}).(bool)
	return admin
}

// RequireAdmin rejects requests whose identity lacks the admin claim. It must
// run inside AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("Authentication required"))
			return
		}
		if !IsAdmin(r.Context()) {
			httputil.WriteError(w, r, apperrors.Forbidden("Admin privileges required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
