package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type statusCounter struct {
	statuses []int
}

func (s *statusCounter) Record(status int, duration time.Duration) {
	s.statuses = append(s.statuses, status)
}

func TestLoggerRecordsStatus(t *testing.T) {
	counter := &statusCounter{}
	handler := Logger(counter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if len(counter.statuses) != 1 || counter.statuses[0] != http.StatusTeapot {
		t.Fatalf("unexpected recorded statuses %v", counter.statuses)
	}

	Logger(nil)(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
}

func TestRecovererReturnsEnvelope(t *testing.T) {
	handler := RequestID(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "internal_error") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRecovererRepanicsOnAbort(t *testing.T) {
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("expected ErrAbortHandler to propagate")
		}
	}()
	Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	handler := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))
	if readErr == nil {
		t.Fatal("expected body over the limit to fail")
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	if readErr != nil {
		t.Fatalf("unexpected error for small body: %v", readErr)
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected nosniff header")
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected HSTS in production")
	}

	rec = httptest.NewRecorder()
	SecureHeaders(false)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("expected no HSTS outside production")
	}
}
