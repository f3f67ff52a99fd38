package paysliphandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/domain/audit"
	"github.com/DrOksusu/email-automation/internal/domain/dispatch"
	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
	"github.com/DrOksusu/email-automation/internal/domain/report"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	"github.com/DrOksusu/email-automation/internal/transport/http/middleware"
	"github.com/DrOksusu/email-automation/internal/transport/http/shared"
)

const sendEndpoint = "POST /payslips/send-emails"

type Records interface {
	Ingest(ctx context.Context, pages []string, sourceLabel string) (payslip.IngestResult, error)
	Get(ctx context.Context, id string) (payslip.Record, error)
	List(ctx context.Context, period string) ([]payslip.RecordView, error)
}

type Dispatcher interface {
	DispatchBatch(ctx context.Context, ids []string) dispatch.Summary
	Preview(ctx context.Context, recordID string) (report.Document, error)
	History(ctx context.Context) ([]dispatch.HistoryEntry, error)
}

type Employees interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
}

type JobRunner interface {
	RunNow(ctx context.Context, jobType, label string, run func(context.Context) (any, error)) (any, error)
}

type Idempotency interface {
	Reserve(ctx context.Context, actor, endpoint, key, requestHash string) (json.RawMessage, bool, error)
	Save(ctx context.Context, actor, endpoint, key, requestHash string, response json.RawMessage) error
	Release(ctx context.Context, actor, endpoint, key string) error
}

type IngestObserver interface {
	RecordIngest(pages, stored int)
}

type Handler struct {
	Records        Records
	Dispatcher     Dispatcher
	Employees      Employees
	Jobs           JobRunner
	Idempotency    Idempotency
	Audit          shared.Auditor
	Observer       IngestObserver
	MaxUploadBytes int64
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/upload", h.handleUpload)
		r.Get("/export", h.handleExport)
		r.Get("/preview-template", h.handlePreview)
		r.Get("/preview-template/{id}", h.handlePreview)
		r.Post("/send-emails", h.handleSend)
		r.Get("/{id}", h.handleGet)
		r.Get("/{id}/pdf", h.handlePDF)
	})
	r.Get("/dispatch-logs", h.handleHistory)
}

type uploadRequest struct {
	Source string   `json:"source"`
	Pages  []string `json:"pages"`
}

type sendRequest struct {
	PayslipIDs []string `json:"payslipIds"`
}

// handleUpload accepts extracted text as JSON {source, pages}, as a
// text/plain body, or as a multipart "file" part. Plain text is split into
// pages on form feeds.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := shared.ReadUpload(r, h.MaxUploadBytes)
	if err != nil {
		shared.FailUpload(w, err, "payslip text is required", requestctx.GetRequestID(r.Context()))
		return
	}

	var req uploadRequest
	if upload.ContentType == "application/json" {
		if err := json.Unmarshal(upload.Data, &req); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
			return
		}
	} else {
		req.Source = upload.Name
		req.Pages = payslip.SplitPages(string(upload.Data))
	}
	if strings.TrimSpace(req.Source) == "" {
		req.Source = r.URL.Query().Get("source")
	}
	if len(req.Pages) == 0 {
		api.Fail(w, http.StatusBadRequest, "no_pages", "no pages supplied", requestctx.GetRequestID(r.Context()))
		return
	}

	out, err := h.Jobs.RunNow(r.Context(), jobs.JobIngest, req.Source, func(ctx context.Context) (any, error) {
		return h.Records.Ingest(ctx, req.Pages, req.Source)
	})
	if err != nil {
		slog.Error("payslip ingest failed", "source", req.Source, "pages", len(req.Pages), "err", err)
		api.Fail(w, http.StatusInternalServerError, "ingest_failed", "failed to ingest payslips", requestctx.GetRequestID(r.Context()))
		return
	}

	result, _ := out.(payslip.IngestResult)
	if h.Observer != nil {
		h.Observer.RecordIngest(result.PagesSeen, result.Created+result.Updated)
	}
	shared.Audit(r, h.Audit, actor(r), audit.ActionIngest, "ingestion_batch", result.BatchID, nil, map[string]any{
		"source":  req.Source,
		"period":  result.Period,
		"created": result.Created,
		"updated": result.Updated,
		"errors":  len(result.Errors),
	})
	api.Success(w, result, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r)
	validator := shared.NewValidator()
	validator.Period("period", period)
	if validator.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	records, err := h.Records.List(r.Context(), period)
	if err != nil {
		slog.Error("list payslips failed", "period", period, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", requestctx.GetRequestID(r.Context()))
		return
	}
	if records == nil {
		records = []payslip.RecordView{}
	}
	api.Success(w, records, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failRecord(w, r, err)
		return
	}
	api.Success(w, rec, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r)
	validator := shared.NewValidator()
	validator.Period("period", period)
	if validator.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	records, err := h.Records.List(r.Context(), period)
	if err != nil {
		slog.Error("export payslips failed", "period", period, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_export_failed", "failed to export payslips", requestctx.GetRequestID(r.Context()))
		return
	}
	buf, filename, err := report.BuildRegister(period, records)
	if err != nil {
		slog.Error("build register failed", "period", period, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_export_failed", "failed to export payslips", requestctx.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, buf); err != nil {
		slog.Warn("write register failed", "err", err)
	}
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Dispatcher.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failRecord(w, r, err)
		return
	}
	api.Success(w, map[string]string{"html": doc.HTML}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failRecord(w, r, err)
		return
	}
	emp, err := h.Employees.Get(r.Context(), rec.EmployeeID)
	if err != nil {
		failRecord(w, r, err)
		return
	}
	pdf, err := report.RenderPDF(rec, emp)
	if err != nil {
		slog.Error("render payslip pdf failed", "payslipId", rec.ID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render payslip", requestctx.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+emp.EmployeeCode+"-"+rec.Period+".pdf"))
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("write payslip pdf failed", "err", err)
	}
}

// handleSend dispatches the selected payslips. With an Idempotency-Key
// header a retried request replays the stored summary instead of sending
// again.
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	var req sendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if len(req.PayslipIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "no_payslips", "payslipIds must not be empty", requestctx.GetRequestID(r.Context()))
		return
	}

	who := actor(r)
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	hash := middleware.RequestHash(body)
	reserved := key != "" && h.Idempotency != nil
	if reserved {
		stored, replay, err := h.Idempotency.Reserve(r.Context(), who, sendEndpoint, key, hash)
		switch {
		case errors.Is(err, middleware.ErrIdempotencyConflict):
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key reused with a different request", requestctx.GetRequestID(r.Context()))
			return
		case errors.Is(err, middleware.ErrIdempotencyInProgress):
			api.Fail(w, http.StatusConflict, "idempotency_in_progress", "a request with this idempotency key is still running", requestctx.GetRequestID(r.Context()))
			return
		case err != nil:
			slog.Error("idempotency reserve failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "idempotency_error", "failed to check idempotency key", requestctx.GetRequestID(r.Context()))
			return
		case replay:
			var summary dispatch.Summary
			if err := json.Unmarshal(stored, &summary); err != nil {
				slog.Error("stored dispatch summary unreadable", "key", key, "err", err)
				api.Fail(w, http.StatusInternalServerError, "idempotency_error", "failed to replay idempotent response", requestctx.GetRequestID(r.Context()))
				return
			}
			api.Success(w, summary, requestctx.GetRequestID(r.Context()))
			return
		}
	}

	dispatched := false
	if reserved {
		defer func() {
			if dispatched {
				return
			}
			if err := h.Idempotency.Release(context.WithoutCancel(r.Context()), who, sendEndpoint, key); err != nil {
				slog.Warn("idempotency release failed", "key", key, "err", err)
			}
		}()
	}

	label := fmt.Sprintf("%d payslips", len(req.PayslipIDs))
	out, _ := h.Jobs.RunNow(r.Context(), jobs.JobDispatch, label, func(ctx context.Context) (any, error) {
		summary := h.Dispatcher.DispatchBatch(ctx, req.PayslipIDs)
		dispatched = true
		return summary, nil
	})
	summary, _ := out.(dispatch.Summary)

	if reserved {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := h.Idempotency.Save(context.WithoutCancel(r.Context()), who, sendEndpoint, key, hash, encoded); err != nil {
				slog.Warn("idempotency save failed", "key", key, "err", err)
			}
		}
	}
	shared.Audit(r, h.Audit, who, audit.ActionDispatch, "payslip", "", nil, map[string]any{
		"requested": len(req.PayslipIDs),
		"sent":      summary.Sent,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
	})
	api.Success(w, summary, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Dispatcher.History(r.Context())
	if err != nil {
		slog.Error("list dispatch history failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to list dispatch logs", requestctx.GetRequestID(r.Context()))
		return
	}
	if entries == nil {
		entries = []dispatch.HistoryEntry{}
	}
	api.Success(w, entries, requestctx.GetRequestID(r.Context()))
}

func failRecord(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payslip.ErrRecordNotFound), errors.Is(err, dispatch.ErrRecordNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestctx.GetRequestID(r.Context()))
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
	default:
		slog.Error("payslip request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_error", "payslip request failed", requestctx.GetRequestID(r.Context()))
	}
}

// periodParam reads ?period=, falling back to the older ?yearMonth= name.
func periodParam(r *http.Request) string {
	if period := strings.TrimSpace(r.URL.Query().Get("period")); period != "" {
		return period
	}
	return strings.TrimSpace(r.URL.Query().Get("yearMonth"))
}

func actor(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.Email
}
