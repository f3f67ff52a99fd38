package employeehandler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
)

type fakeRegistry struct {
	byID     map[string]employee.Employee
	imported string
	deleted  []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{byID: map[string]employee.Employee{
		"e1": {ID: "e1", EmployeeCode: "1001", Name: "김민수", Email: "minsu@example.com", IsActive: true},
	}}
}

func (f *fakeRegistry) List(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.byID))
	for _, emp := range f.byID {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeRegistry) Get(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

func (f *fakeRegistry) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range f.byID {
		if existing.EmployeeCode == emp.EmployeeCode {
			return employee.Employee{}, employee.ErrDuplicateCode
		}
	}
	emp.ID = "e" + emp.EmployeeCode
	emp.IsActive = true
	f.byID[emp.ID] = emp
	return emp, nil
}

func (f *fakeRegistry) Update(ctx context.Context, id string, upd employee.Update) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	if upd.Email != "" {
		emp.Email = upd.Email
	}
	f.byID[id] = emp
	return emp, nil
}

func (f *fakeRegistry) Deactivate(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return employee.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRegistry) ImportCSV(ctx context.Context, r io.Reader) (employee.ImportResult, error) {
	data, _ := io.ReadAll(r)
	f.imported = string(data)
	return employee.ImportResult{Created: 1, Errors: []employee.ImportError{}}, nil
}

type inlineJobs struct {
	types []string
}

func (j *inlineJobs) RunNow(ctx context.Context, jobType, label string, run func(context.Context) (any, error)) (any, error) {
	j.types = append(j.types, jobType)
	return run(ctx)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateEmployee(t *testing.T) {
	reg := newFakeRegistry()
	h := NewHandler(reg, &inlineJobs{}, nil, 1<<20)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"employeeCode":"1002","name":"이영희","email":"yh@example.com"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"employeeCode":"1002","name":"이영희"}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %d", rec.Code)
	}

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"employeeCode":"1003","name":"박","email":"nope"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("expected email validation error, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetUpdateDelete(t *testing.T) {
	reg := newFakeRegistry()
	h := NewHandler(reg, &inlineJobs{}, nil, 1<<20)

	if rec := serve(h, httptest.NewRequest(http.MethodGet, "/employees/missing", nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec := serve(h, httptest.NewRequest(http.MethodPut, "/employees/e1", strings.NewReader(`{"email":"new@example.com"}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "new@example.com") {
		t.Fatalf("unexpected update response %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/employees/e1", nil))
	if rec.Code != http.StatusOK || len(reg.deleted) != 1 {
		t.Fatalf("unexpected delete response %d, deleted=%v", rec.Code, reg.deleted)
	}
}

func TestImportAcceptsRawAndMultipart(t *testing.T) {
	reg := newFakeRegistry()
	runner := &inlineJobs{}
	h := NewHandler(reg, runner, nil, 1<<20)

	csvBody := "employeeCode,name,email\n1002,이영희,yh@example.com\n"
	req := httptest.NewRequest(http.MethodPost, "/employees/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if reg.imported != csvBody {
		t.Fatalf("unexpected imported body %q", reg.imported)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "employees.csv")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(csvBody)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/employees/upload-csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for multipart, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(runner.types) != 2 || runner.types[0] != "employee_import" {
		t.Fatalf("expected import jobs, got %v", runner.types)
	}

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/employees/import", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty upload, got %d", rec.Code)
	}
}

func TestImportRejectsBodyOverLimit(t *testing.T) {
	reg := newFakeRegistry()
	csvBody := "employeeCode,name,email\n1002,이영희,yh@example.com\n1003,박지훈,jh@example.com\n"
	h := NewHandler(reg, &inlineJobs{}, nil, int64(len(csvBody)-1))

	req := httptest.NewRequest(http.MethodPost, "/employees/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
	if reg.imported != "" {
		t.Fatalf("expected no import, got %q", reg.imported)
	}
}
