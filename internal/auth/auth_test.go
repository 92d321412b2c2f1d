package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestManager(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := m.Issue(42)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		id, err := m.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if id != 42 {
			t.Errorf("Expected user 42, got %d", id)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, _ := NewManager("other-secret", time.Hour)
		token, _ := other.Issue(42)
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		past, _ := NewManager("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _ := past.Issue(42)
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := m.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("EmptySecret", func(t *testing.T) {
		if _, err := NewManager("", time.Hour); err == nil {
			t.Error("Expected an error for an empty secret")
		}
	})
}

func TestMiddleware(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)
	token, _ := m.Issue(7)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strconv.FormatInt(UserIDFromContext(r.Context()), 10)))
	})

	tests := []struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantBody   string
	}{
		{"OptionalAnonymous", false, "", http.StatusOK, "0"},
		{"OptionalBearer", false, "Bearer " + token, http.StatusOK, "7"},
		{"OptionalTokenScheme", false, "Token " + token, http.StatusOK, "7"},
		{"OptionalInvalid", false, "Bearer nope", http.StatusUnauthorized, "Invalid token."},
		{"OptionalOtherScheme", false, "Basic abc", http.StatusOK, "0"},
		{"RequiredAnonymous", true, "", http.StatusUnauthorized, "not provided"},
		{"RequiredValid", true, "Bearer " + token, http.StatusOK, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := m.Optional(echo)
			if tt.required {
				h = m.Required(echo)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Errorf("Expected body to contain %q, got %q", tt.wantBody, rr.Body.String())
			}
		})
	}
}
