package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: "test-secret-32-bytes-long-enough", TTL: ttl, Issuer: "test"})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestIssueAndValidate(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, exp, err := m.Issue("42", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry %v is not in the future", exp)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.AccountID != "42" || claims.Email != "ana@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestValidateRejects(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, _ := NewManager(Config{Secret: "another-secret", TTL: time.Hour, Issuer: "test"})
	foreign, _, _ := other.Issue("42", "ana@example.com")

	expiredMgr := newTestManager(t, time.Hour)
	expiredMgr.ttl = -time.Minute
	expired, _, _ := expiredMgr.Issue("42", "ana@example.com")

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestRequireAuth(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, _ := m.Issue("7", "luis@example.com")

	var seen string
	h := RequireAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AccountID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && seen != "7" {
				t.Errorf("account id in context = %q, want 7", seen)
			}
		})
	}
}
