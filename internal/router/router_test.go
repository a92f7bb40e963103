package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/notify"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/database"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/utilities"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "router.db"), Timeout: time.Second}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	sessions, err := session.NewManager(session.Config{Secret: "test-secret-32-bytes-long-enough", TTL: time.Hour, Issuer: "test"})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	logger := zap.NewNop().Sugar()
	srv := httptest.NewServer(RegisterRoutes(logger, Deps{
		DB:        db,
		IDs:       utilities.NewIDGenerator(3),
		Sessions:  sessions,
		Publisher: notify.NewLogPublisher(logger),
		Account:   account.Config{AutoVerify: true},
		Hasher:    account.BcryptHasher{Cost: bcrypt.MinCost},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestHealthAndHeaders(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, http.MethodGet, srv.URL+"/api/health", "", "")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("health = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" || resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Errorf("security headers missing: %v", resp.Header)
	}
	if resp.Header.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on a plain HTTP response")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/me", "/api/settings", "/api/categories"} {
		resp, _ := do(t, http.MethodGet, srv.URL+path, "", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestRegistrationFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/auth/register", "",
		`{"email":"a@b.com","password":"secret123","name":"Ana","coupleName":"AnaYLuis"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register = %d %s", resp.StatusCode, body)
	}
	resp, _ = do(t, http.MethodPost, srv.URL+"/api/auth/register", "",
		`{"email":"a@b.com","password":"secret123","name":"Ana"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second register = %d, want 409", resp.StatusCode)
	}

	resp, body = do(t, http.MethodPost, srv.URL+"/api/auth/login", "", `{"email":"a@b.com","password":"secret123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login = %d %s", resp.StatusCode, body)
	}
	var login account.LoginResponse
	if err := json.Unmarshal([]byte(body), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/api/settings", login.Token, "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"shared"`) {
		t.Errorf("settings = %d %s", resp.StatusCode, body)
	}
	resp, body = do(t, http.MethodGet, srv.URL+"/api/categories?kind=income", login.Token, "")
	if resp.StatusCode != http.StatusOK || strings.Count(body, `"kind":"income"`) != 4 {
		t.Errorf("categories = %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/metrics", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`account_provisioning_total{outcome="success"} 1`,
		`account_provisioning_total{outcome="duplicate"} 1`,
		`http_requests_total{method="POST",route="POST /api/auth/register",status="201"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
