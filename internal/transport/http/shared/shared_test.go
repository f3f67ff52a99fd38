package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	v.Required("employeeCode", " ", "is required")
	v.Email("email", "not-an-email")
	v.Email("email2", "")
	v.Period("period", "2024-13")
	v.Period("period2", "2024-12")

	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", issues)
	}
	if issues[0].Field != "email" || issues[1].Field != "employeeCode" || issues[2].Field != "period" {
		t.Fatalf("expected issues sorted by field, got %+v", issues)
	}

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=900&offset=20", nil)
	page := ParsePagination(req, 50, 200)
	if page.Limit != 200 || page.Offset != 20 {
		t.Fatalf("unexpected pagination %+v", page)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=-1", nil)
	page = ParsePagination(req, 50, 200)
	if page.Limit != 50 || page.Offset != 0 {
		t.Fatalf("unexpected pagination %+v", page)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := ClientIP(req); got != "192.0.2.1" {
		t.Fatalf("unexpected ip %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("unexpected forwarded ip %q", got)
	}
}

func TestReadUploadRejectsOversizedBody(t *testing.T) {
	body := "page one\fpage two"
	limit := int64(len(body))

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	upload, err := ReadUpload(req, limit)
	if err != nil || string(upload.Data) != body {
		t.Fatalf("expected full body at the limit, got %q %v", upload.Data, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body+"!"))
	if _, err := ReadUpload(req, limit); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body+"!"))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, limit)
	if _, err := ReadUpload(req, limit); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge behind MaxBytesReader, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	if _, err := ReadUpload(req, limit); !errors.Is(err, ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}
