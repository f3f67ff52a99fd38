package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DrOksusu/email-automation/internal/app"
	"github.com/DrOksusu/email-automation/internal/domain/auth"
	"github.com/DrOksusu/email-automation/internal/platform/config"
)

const testSecret = "test-secret-with-enough-length-123456"

func testConfig() config.Config {
	return config.Config{
		Environment:        "test",
		JWTSecret:          testSecret,
		TokenTTL:           time.Hour,
		AdminEmail:         "ops@example.com",
		MaxBodyBytes:       1 << 20,
		MaxUploadBytes:     1 << 20,
		ParseWorkers:       2,
		DispatchWorkers:    2,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
}

func TestHealthAndReadiness(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, app.Build(cfg, nil), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a database, got %d", rec.Code)
	}
}

func TestOperatorRoutesRequireToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, app.Build(cfg, nil), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payslips/preview-template", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	token, err := auth.GenerateToken(testSecret, auth.Claims{Email: "ops@example.com", Role: auth.RoleOperator}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/preview-template", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "html") {
		t.Fatalf("expected preview html, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, app.Build(cfg, nil), nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cfg.MetricsEnabled = false
	router = NewRouter(cfg, app.Build(cfg, nil), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when metrics are disabled, got %d", rec.Code)
	}
}
