package employeehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/domain/audit"
	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	"github.com/DrOksusu/email-automation/internal/transport/http/middleware"
	"github.com/DrOksusu/email-automation/internal/transport/http/shared"
)

type Registry interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Get(ctx context.Context, id string) (employee.Employee, error)
	Create(ctx context.Context, emp employee.Employee) (employee.Employee, error)
	Update(ctx context.Context, id string, upd employee.Update) (employee.Employee, error)
	Deactivate(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, r io.Reader) (employee.ImportResult, error)
}

type JobRunner interface {
	RunNow(ctx context.Context, jobType, label string, run func(context.Context) (any, error)) (any, error)
}

type Handler struct {
	Registry       Registry
	Jobs           JobRunner
	Audit          shared.Auditor
	MaxUploadBytes int64
}

func NewHandler(registry Registry, jobRunner JobRunner, auditor shared.Auditor, maxUploadBytes int64) *Handler {
	return &Handler{Registry: registry, Jobs: jobRunner, Audit: auditor, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/import", h.handleImport)
		r.Post("/upload-csv", h.handleImport)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

type employeePayload struct {
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	HireDate     string `json:"hireDate"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Registry.List(r.Context())
	if err != nil {
		slog.Error("list employees failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestctx.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	api.Success(w, employees, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failLookup(w, r, err)
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	validator := shared.NewValidator()
	validator.Required("employeeCode", payload.EmployeeCode, "is required")
	validator.Required("name", payload.Name, "is required")
	validator.Email("email", payload.Email)
	if validator.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Registry.Create(r.Context(), employee.Employee{
		EmployeeCode: payload.EmployeeCode,
		Name:         strings.TrimSpace(payload.Name),
		Email:        payload.Email,
		Department:   strings.TrimSpace(payload.Department),
		Position:     strings.TrimSpace(payload.Position),
		HireDate:     employee.ParseHireDate(payload.HireDate),
	})
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrDuplicateCode):
			api.Fail(w, http.StatusConflict, "employee_exists", "employee code already exists", requestctx.GetRequestID(r.Context()))
		case errors.Is(err, employee.ErrCodeRequired):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestctx.GetRequestID(r.Context()))
		default:
			slog.Error("create employee failed", "code", payload.EmployeeCode, "err", err)
			api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestctx.GetRequestID(r.Context()))
		}
		return
	}

	shared.Audit(r, h.Audit, actor(r), audit.ActionEmployeeCreate, "employee", emp.ID, nil, emp)
	api.Created(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employee.Update
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	validator := shared.NewValidator()
	validator.Email("email", payload.Email)
	if validator.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "id")
	before, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		failLookup(w, r, err)
		return
	}
	emp, err := h.Registry.Update(r.Context(), id, payload)
	if err != nil {
		failLookup(w, r, err)
		return
	}

	shared.Audit(r, h.Audit, actor(r), audit.ActionEmployeeUpdate, "employee", emp.ID, before, emp)
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Registry.Deactivate(r.Context(), id); err != nil {
		failLookup(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, actor(r), audit.ActionEmployeeDelete, "employee", id, nil, nil)
	api.Success(w, map[string]string{"status": "deactivated"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	upload, err := shared.ReadUpload(r, h.MaxUploadBytes)
	if err != nil {
		shared.FailUpload(w, err, "a CSV file is required", requestctx.GetRequestID(r.Context()))
		return
	}

	out, err := h.Jobs.RunNow(r.Context(), jobs.JobImport, upload.Name, func(ctx context.Context) (any, error) {
		return h.Registry.ImportCSV(ctx, bytes.NewReader(upload.Data))
	})
	if err != nil {
		if errors.Is(err, employee.ErrInvalidCSV) {
			api.Fail(w, http.StatusBadRequest, "invalid_csv", err.Error(), requestctx.GetRequestID(r.Context()))
			return
		}
		slog.Error("employee import failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_import_failed", "failed to import employees", requestctx.GetRequestID(r.Context()))
		return
	}

	result, _ := out.(employee.ImportResult)
	shared.Audit(r, h.Audit, actor(r), audit.ActionEmployeeImport, "employee", "", nil, map[string]int{
		"created": result.Created,
		"updated": result.Updated,
		"errors":  len(result.Errors),
	})
	api.Success(w, result, requestctx.GetRequestID(r.Context()))
}

func failLookup(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
		return
	}
	slog.Error("employee request failed", "path", r.URL.Path, "err", err)
	api.Fail(w, http.StatusInternalServerError, "employee_error", "employee request failed", requestctx.GetRequestID(r.Context()))
}

func actor(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.Email
}
