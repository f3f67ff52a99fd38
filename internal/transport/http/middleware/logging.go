package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DrOksusu/email-automation/internal/transport/http/api"
)

// Recorder receives the status and latency of every request.
type Recorder interface {
	Record(status int, duration time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger writes one structured line per request and feeds metrics when
// recorder is non-nil.
func Logger(recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if recorder != nil {
				recorder.Record(rec.status, duration)
			}
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"durationMs", duration.Milliseconds(),
				"requestId", GetRequestID(r.Context()),
			)
		})
	}
}

// Recoverer turns a handler panic into a 500 envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("handler panic", "panic", rec, "path", r.URL.Path, "requestId", GetRequestID(r.Context()))
				failInternal(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func failInternal(w http.ResponseWriter, r *http.Request) {
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
}
