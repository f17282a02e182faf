package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iho/exemptledger/internal/infrastructure/auth"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserIDContextKey is the context key for the authenticated user id
	UserIDContextKey ContextKey = "user_id"

	// UserIDHeader identifies the caller when authentication is disabled.
	UserIDHeader = "X-User-ID"
)

// Authenticator resolves the calling user for every request.
type Authenticator struct {
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthenticator creates an Authenticator. A nil jwtManager disables
// token checks and trusts the X-User-ID header instead.
func NewAuthenticator(jwtManager *auth.JWTManager, m *metrics.Metrics) *Authenticator {
	return &Authenticator{jwtManager: jwtManager, metrics: m}
}

// Wrap rejects requests without a resolvable user.
func (a *Authenticator) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, reason := a.resolve(r)
		if userID == "" {
			a.metrics.AuthFailed(reason)
			writeError(w, http.StatusUnauthorized, "unauthorized", reason)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) resolve(r *http.Request) (string, string) {
	if a.jwtManager == nil {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			return "", "missing user header"
		}
		return userID, ""
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid authorization header format"
	}

	claims, err := a.jwtManager.Verify(parts[1])
	if err != nil {
		return "", err.Error()
	}

	return claims.UserID(), ""
}

// WithUserID stores the user id on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user id from context
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Message: details})
}
