package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DrOksusu/email-automation/internal/domain/audit"
	"github.com/DrOksusu/email-automation/internal/domain/auth"
	"github.com/DrOksusu/email-automation/internal/domain/dispatch"
	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/email"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
	"github.com/DrOksusu/email-automation/internal/platform/metrics"
	"github.com/DrOksusu/email-automation/internal/transport/http/middleware"
)

// Services is the wired service graph shared by the HTTP server and the CLI.
type Services struct {
	Employees   *employee.Service
	Payslips    *payslip.Service
	Dispatch    *dispatch.Engine
	Auth        *auth.Service
	Audit       *audit.Service
	Jobs        *jobs.Service
	Idempotency *middleware.IdempotencyStore
	Metrics     *metrics.Collector
}

func Build(cfg config.Config, pool *pgxpool.Pool) *Services {
	collector := metrics.New()

	employeeStore := employee.NewStore(pool)
	employees := employee.NewService(employeeStore)
	payslipStore := payslip.NewStore(pool)
	payslips := payslip.NewService(payslipStore, employees, cfg.ParseWorkers)

	engine := dispatch.NewEngine(payslipStore, employeeStore, dispatch.NewStore(pool), email.New(cfg))
	engine.Workers = cfg.DispatchWorkers
	engine.Observer = collector

	return &Services{
		Employees: employees,
		Payslips:  payslips,
		Dispatch:  engine,
		Auth: auth.NewService(auth.Operator{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			TOTPSecret:   cfg.AdminTOTPSecret,
		}, cfg.JWTSecret, cfg.TokenTTL),
		Audit:       audit.New(pool),
		Jobs:        jobs.New(pool),
		Idempotency: middleware.NewIdempotencyStore(pool),
		Metrics:     collector,
	}
}
