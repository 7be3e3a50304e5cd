package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

type stubAuth map[string]string

func (s stubAuth) Authenticate(token string) (string, error) {
	if email, ok := s[token]; ok {
		return email, nil
	}
	return "", errors.New("bad token")
}

type stubRoles struct {
	admins map[string]bool
	err    error
}

func (s stubRoles) IsAdmin(_ context.Context, email string) (bool, error) {
	return s.admins[email], s.err
}

func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		email, _ := utils.GetEmailFromContext(r.Context())
		w.Header().Set("X-Email", email)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestVerifyToken(t *testing.T) {
	auth := stubAuth{"good": "alice@example.com"}

	tests := []struct {
		name   string
		header string
		value  string
		query  string
		want   int
	}{
		{"missing header", "", "", "?email=alice@example.com", http.StatusUnauthorized},
		{"invalid token", "auth", "Bearer nope", "?email=alice@example.com", http.StatusForbidden},
		{"no token field", "auth", "Bearer", "?email=alice@example.com", http.StatusForbidden},
		{"email mismatch", "auth", "Bearer good", "?email=bob@example.com", http.StatusForbidden},
		{"case sensitive email", "auth", "Bearer good", "?email=Alice@example.com", http.StatusForbidden},
		{"auth header", "auth", "Bearer good", "?email=alice@example.com", http.StatusNoContent},
		{"authorization fallback", "Authorization", "Bearer good", "?email=alice@example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			h := VerifyToken(auth, zap.NewNop())(okHandler(&reached))

			req := httptest.NewRequest(http.MethodGet, "/orders"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if reached != (tt.want == http.StatusNoContent) {
				t.Fatalf("handler reached = %v", reached)
			}
			if reached && rec.Header().Get("X-Email") != "alice@example.com" {
				t.Fatalf("context email = %q", rec.Header().Get("X-Email"))
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	chain := func(roles RoleChecker, reached *bool) http.Handler {
		auth := stubAuth{"alice": "alice@example.com", "bob": "bob@example.com"}
		return VerifyToken(auth, zap.NewNop())(Admin(roles, zap.NewNop())(okHandler(reached)))
	}
	roles := stubRoles{admins: map[string]bool{"alice@example.com": true}}

	tests := []struct {
		name  string
		roles RoleChecker
		token string
		email string
		want  int
	}{
		{"admin passes", roles, "alice", "alice@example.com", http.StatusNoContent},
		{"customer blocked", roles, "bob", "bob@example.com", http.StatusForbidden},
		{"store down", stubRoles{err: errors.New("down")}, "alice", "alice@example.com", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			req := httptest.NewRequest(http.MethodDelete, "/product/x?email="+tt.email, nil)
			req.Header.Set("auth", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			chain(tt.roles, &reached).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if reached != (tt.want == http.StatusNoContent) {
				t.Fatalf("handler reached = %v", reached)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
