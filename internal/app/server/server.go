package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DrOksusu/email-automation/internal/app"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/db"
	"github.com/DrOksusu/email-automation/internal/requestctx"
	"github.com/DrOksusu/email-automation/internal/transport/http/api"
	audithandler "github.com/DrOksusu/email-automation/internal/transport/http/handlers/audit"
	authhandler "github.com/DrOksusu/email-automation/internal/transport/http/handlers/auth"
	employeehandler "github.com/DrOksusu/email-automation/internal/transport/http/handlers/employees"
	jobshandler "github.com/DrOksusu/email-automation/internal/transport/http/handlers/jobs"
	paysliphandler "github.com/DrOksusu/email-automation/internal/transport/http/handlers/payslips"
	"github.com/DrOksusu/email-automation/internal/transport/http/middleware"
)

const shutdownTimeout = 15 * time.Second

// Pinger reports database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Run connects, migrates and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect failed: %w", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	services := app.Build(cfg, pool)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, services, pool),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("payslip server listening", "addr", cfg.Addr, "env", cfg.Environment, "emailEnabled", cfg.EmailEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter mounts the health checks, metrics and the operator API.
func NewRouter(cfg config.Config, services *app.Services, pinger Pinger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(services.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if pinger == nil || pinger.Ping(ctx) != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, services.Metrics.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(bodyLimits(cfg))

		authhandler.NewHandler(services.Auth, services.Audit).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOperator)

			employeehandler.NewHandler(services.Employees, services.Jobs, services.Audit, cfg.MaxUploadBytes).RegisterRoutes(r)
			payslips := &paysliphandler.Handler{
				Records:        services.Payslips,
				Dispatcher:     services.Dispatch,
				Employees:      services.Employees,
				Jobs:           services.Jobs,
				Idempotency:    services.Idempotency,
				Audit:          services.Audit,
				Observer:       services.Metrics,
				MaxUploadBytes: cfg.MaxUploadBytes,
			}
			payslips.RegisterRoutes(r)
			jobshandler.NewHandler(services.Jobs).RegisterRoutes(r)
			audithandler.NewHandler(services.Audit).RegisterRoutes(r)
		})
	})

	return router
}

var uploadPaths = map[string]bool{
	"/api/v1/payslips/upload":      true,
	"/api/v1/employees/import":     true,
	"/api/v1/employees/upload-csv": true,
}

// bodyLimits caps JSON bodies at MaxBodyBytes and document uploads at
// MaxUploadBytes.
func bodyLimits(cfg config.Config) func(http.Handler) http.Handler {
	jsonLimit := middleware.BodyLimit(cfg.MaxBodyBytes)
	uploadLimit := middleware.BodyLimit(cfg.MaxUploadBytes)
	return func(next http.Handler) http.Handler {
		jsonNext := jsonLimit(next)
		uploadNext := uploadLimit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uploadPaths[r.URL.Path] {
				uploadNext.ServeHTTP(w, r)
				return
			}
			jsonNext.ServeHTTP(w, r)
		})
	}
}
