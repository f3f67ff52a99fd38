package payslip

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
)

// EmployeeResolver finds or lazily creates the owner of a parsed payslip.
type EmployeeResolver interface {
	Resolve(ctx context.Context, code, name, hireDate string) (employee.Employee, bool, error)
}

type IngestError struct {
	EmployeeCode string `json:"employeeCode"`
	Message      string `json:"message"`
}

type IngestResult struct {
	BatchID      string        `json:"batchId"`
	Period       string        `json:"period"`
	PagesSeen    int           `json:"pagesSeen"`
	Parsed       int           `json:"parsed"`
	Created      int           `json:"created"`
	Updated      int           `json:"updated"`
	WithEmail    int           `json:"withEmail"`
	WithoutEmail int           `json:"withoutEmail"`
	Errors       []IngestError `json:"errors"`
	Records      []Record      `json:"records"`
}

type Service struct {
	store     StoreAPI
	employees EmployeeResolver
	workers   int
}

func NewService(store StoreAPI, employees EmployeeResolver, workers int) *Service {
	return &Service{store: store, employees: employees, workers: workers}
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.store.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, period string) ([]RecordView, error) {
	return s.store.ListRecords(ctx, period)
}

// outcome is what storing a single parsed record produced.
type outcome struct {
	code     string
	record   Record
	created  bool
	hasEmail bool
	err      error
}

// Ingest parses pages, records the batch and stores every payslip found.
// Failures are reported per employee code; one bad record never stops the
// others. Re-ingesting the same pages updates rows instead of adding new ones.
func (s *Service) Ingest(ctx context.Context, pages []string, sourceLabel string) (IngestResult, error) {
	if len(pages) == 0 {
		return IngestResult{}, ErrNoPages
	}
	parsed, err := ParsePages(ctx, pages, s.workers)
	if err != nil {
		return IngestResult{}, err
	}

	period := ""
	if len(parsed) > 0 {
		period = parsed[0].Period
	}
	batch, err := s.store.CreateBatch(ctx, Batch{
		SourceLabel: sourceLabel,
		Period:      period,
		TotalPages:  len(pages),
		ParsedCount: len(parsed),
	})
	if err != nil {
		return IngestResult{}, err
	}

	outcomes := make([]outcome, len(parsed))
	var g errgroup.Group
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}
	for i, rec := range parsed {
		g.Go(func() error {
			outcomes[i] = s.storeParsed(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	result := foldOutcomes(outcomes)
	result.BatchID = batch.ID
	result.Period = period
	result.PagesSeen = len(pages)
	result.Parsed = len(parsed)

	slog.Info("payslip batch ingested",
		"batchId", batch.ID, "source", sourceLabel, "period", period,
		"pages", len(pages), "parsed", len(parsed),
		"created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
	return result, nil
}

func (s *Service) storeParsed(ctx context.Context, rec ParsedRecord) outcome {
	out := outcome{code: rec.EmployeeCode}
	if err := ctx.Err(); err != nil {
		out.err = err
		return out
	}
	emp, _, err := s.employees.Resolve(ctx, rec.EmployeeCode, rec.EmployeeName, rec.HireDate)
	if err != nil {
		out.err = err
		return out
	}
	out.hasEmail = emp.HasAddress()

	stored, created, err := s.store.UpsertRecord(ctx, emp.ID, rec.Period, rec.Fields)
	if err != nil {
		out.err = err
		return out
	}
	out.record = stored
	out.created = created
	return out
}

func foldOutcomes(outcomes []outcome) IngestResult {
	result := IngestResult{Errors: []IngestError{}, Records: []Record{}}
	for _, o := range outcomes {
		if o.err != nil {
			code := o.code
			if code == "" {
				code = "unknown"
			}
			result.Errors = append(result.Errors, IngestError{EmployeeCode: code, Message: o.err.Error()})
			continue
		}
		if o.created {
			result.Created++
		} else {
			result.Updated++
		}
		if o.hasEmail {
			result.WithEmail++
		} else {
			result.WithoutEmail++
		}
		result.Records = append(result.Records, o.record)
	}
	return result
}
