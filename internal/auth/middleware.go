package auth

import (
	"context"
	"net/http"
	"strings"

	"foodgram/internal/logging"

	"github.com/goccy/go-json"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user ID, or 0 for anonymous
// requests.
func UserIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDContextKey).(int64)
	return id
}

// WithUserID returns a context carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// Optional attaches the user ID of a valid bearer token and lets every
// request through. An invalid token is answered with 401.
func (m *Manager) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		id, err := m.Verify(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("rejected bearer token")
			unauthorized(w, "Invalid token.")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}

// Required rejects requests without a valid bearer token.
func (m *Manager) Required(next http.Handler) http.Handler {
	return m.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == 0 {
			unauthorized(w, "Authentication credentials were not provided.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// bearerToken accepts both "Bearer <jwt>" and "Token <jwt>".
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
