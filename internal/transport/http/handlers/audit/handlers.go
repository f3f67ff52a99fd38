package audithandler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/domain/audit"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	"github.com/DrOksusu/email-automation/internal/transport/http/shared"
)

const exportLimit = 10000

type Reader interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Service Reader
}

func NewHandler(service Reader) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/events", h.handleListEvents)
		r.Get("/events/export", h.handleExportEvents)
	})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	filter := filterFromQuery(r)
	includeDetails := r.URL.Query().Get("includeDetails") == "true"

	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		slog.Warn("audit count failed", "err", err)
	}
	events, err := h.Service.List(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", requestctx.GetRequestID(r.Context()))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, events, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.List(r.Context(), filterFromQuery(r), false, exportLimit, 0)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_export_failed", "failed to export audit events", requestctx.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	if err := audit.WriteCSV(w, events); err != nil {
		slog.Warn("audit export failed", "err", err)
	}
}

func filterFromQuery(r *http.Request) audit.Filter {
	q := r.URL.Query()
	return audit.Filter{Action: q.Get("action"), EntityType: q.Get("entityType"), Actor: q.Get("actor")}
}
