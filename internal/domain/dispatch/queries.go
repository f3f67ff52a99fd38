package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/DrOksusu/email-automation/internal/domain/payslip"
	"github.com/DrOksusu/email-automation/internal/domain/report"
)

const historyLimit = 100

// History returns the most recent attempts, newest first.
func (e *Engine) History(ctx context.Context) ([]HistoryEntry, error) {
	return e.store.ListRecent(ctx, historyLimit)
}

// Preview renders the notice exactly as Dispatch would send it. An empty
// recordID renders the built-in sample.
func (e *Engine) Preview(ctx context.Context, recordID string) (report.Document, error) {
	if recordID == "" {
		rec, emp := report.Sample()
		return report.Render(rec, emp)
	}
	rec, err := e.records.GetRecord(ctx, recordID)
	if errors.Is(err, payslip.ErrRecordNotFound) {
		return report.Document{}, ErrRecordNotFound
	}
	if err != nil {
		return report.Document{}, fmt.Errorf("load payslip %s: %w", recordID, err)
	}
	emp, err := e.employees.Get(ctx, rec.EmployeeID)
	if err != nil {
		return report.Document{}, fmt.Errorf("load employee %s: %w", rec.EmployeeID, err)
	}
	return report.Render(rec, emp)
}
