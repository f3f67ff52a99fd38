package jobshandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/platform/jobs"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	"github.com/DrOksusu/email-automation/internal/transport/http/shared"
)

type Lister interface {
	List(ctx context.Context, limit int) ([]jobs.Run, error)
}

type Handler struct {
	Jobs Lister
}

func NewHandler(lister Lister) *Handler {
	return &Handler{Jobs: lister}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jobs", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	runs, err := h.Jobs.List(r.Context(), page.Limit)
	if err != nil {
		slog.Error("list job runs failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "jobs_list_failed", "failed to list jobs", requestctx.GetRequestID(r.Context()))
		return
	}
	if runs == nil {
		runs = []jobs.Run{}
	}
	api.Success(w, runs, requestctx.GetRequestID(r.Context()))
}
