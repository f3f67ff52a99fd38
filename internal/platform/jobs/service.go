package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	JobIngest   = "payslip_ingest"
	JobDispatch = "payslip_dispatch"
	JobImport   = "employee_import"
)

// Service runs operator-triggered batches and keeps a job_runs row for each.
// With a nil DB the work still runs but nothing is recorded.
type Service struct {
	DB *pgxpool.Pool
}

type Run struct {
	ID          string          `json:"id"`
	JobType     string          `json:"jobType"`
	Label       string          `json:"label"`
	Status      string          `json:"status"`
	Details     json.RawMessage `json:"details,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// RunNow executes run synchronously. The job_runs row is written before run
// starts and completed afterwards with run's result as JSON details.
func (s *Service) RunNow(ctx context.Context, jobType, label string, run func(context.Context) (any, error)) (any, error) {
	runID := s.start(ctx, jobType, label)

	details, err := run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
		details = map[string]any{"error": err.Error(), "result": details}
	}
	s.finish(context.WithoutCancel(ctx), runID, jobType, status, details)
	return details, err
}

func (s *Service) start(ctx context.Context, jobType, label string) string {
	if s.DB == nil {
		return ""
	}
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, label, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, jobType, label, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "jobType", jobType, "err", err)
	}
	return runID
}

func (s *Service) finish(ctx context.Context, runID, jobType, status string, details any) {
	if runID == "" {
		return
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "jobType", jobType, "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if _, err := s.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID); err != nil {
		slog.Warn("job run update failed", "jobType", jobType, "runId", runID, "err", err)
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Run, error) {
	if s.DB == nil {
		return []Run{}, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, job_type, label, status, details_json, started_at, completed_at
    FROM job_runs
    ORDER BY started_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var r Run
		var details []byte
		if err := rows.Scan(&r.ID, &r.JobType, &r.Label, &r.Status, &details, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			r.Details = json.RawMessage(details)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
