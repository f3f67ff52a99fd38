package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
	"github.com/DrOksusu/email-automation/internal/domain/report"
)

// Transport delivers one rendered notice. It is called once per attempt and
// never retried here.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

type RecordSource interface {
	GetRecord(ctx context.Context, id string) (payslip.Record, error)
}

type EmployeeSource interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
}

// Observer is told how each dispatch ended: "sent", "failed" or "skipped".
type Observer interface {
	RecordDispatch(result string)
}

type Engine struct {
	records   RecordSource
	employees EmployeeSource
	store     StoreAPI
	transport Transport

	Workers  int
	Observer Observer
	Now      func() time.Time
}

func NewEngine(records RecordSource, employees EmployeeSource, store StoreAPI, transport Transport) *Engine {
	return &Engine{
		records:   records,
		employees: employees,
		store:     store,
		transport: transport,
		Now:       time.Now,
	}
}

// Subject is the notice subject line for a pay period.
func Subject(period string) string {
	return fmt.Sprintf("[%s] 급여명세서 안내", period)
}

type attempt struct {
	recordID  string
	entry     Log
	attempted bool
	delivered bool
	err       error
}

// Dispatch renders and sends the payslip notice for recordID.
//
// An employee without an address yields ErrNoAddress and no log row. Once a
// pending row exists it is always moved to sent or failed before returning;
// the transition runs on a context detached from ctx so cancellation of the
// caller cannot strand it. A crash between the send and that update still
// leaves the row pending.
func (e *Engine) Dispatch(ctx context.Context, recordID string) (Log, error) {
	a := e.attempt(ctx, recordID)
	return a.entry, a.err
}

func (e *Engine) attempt(ctx context.Context, recordID string) (a attempt) {
	a.recordID = recordID
	defer func() { e.observe(a) }()

	rec, err := e.records.GetRecord(ctx, recordID)
	if errors.Is(err, payslip.ErrRecordNotFound) {
		a.err = ErrRecordNotFound
		return a
	}
	if err != nil {
		a.err = fmt.Errorf("load payslip %s: %w", recordID, err)
		return a
	}
	emp, err := e.employees.Get(ctx, rec.EmployeeID)
	if err != nil {
		a.err = fmt.Errorf("load employee %s: %w", rec.EmployeeID, err)
		return a
	}
	if !emp.HasAddress() {
		a.err = ErrNoAddress
		return a
	}

	subject := Subject(rec.Period)
	entry, err := e.store.CreatePending(ctx, rec.ID, emp.Email, subject)
	if err != nil {
		a.err = err
		return a
	}
	a.attempted = true
	a.entry = entry

	sendErr := e.deliver(ctx, rec, emp, subject)
	finalizeCtx := context.WithoutCancel(ctx)

	if sendErr != nil {
		a.entry.Status = StatusFailed
		a.entry.ErrorMessage = sendErr.Error()
		a.err = &DeliveryError{Err: sendErr}
		if err := e.store.MarkFailed(finalizeCtx, entry.ID, a.entry.ErrorMessage); err != nil {
			slog.Error("dispatch log not finalized", "logId", entry.ID, "payslipId", rec.ID, "status", StatusFailed, "err", err)
			a.entry.Status = StatusPending
			a.err = fmt.Errorf("%w; log %s not finalized: %v", a.err, entry.ID, err)
		}
		return a
	}

	a.delivered = true
	sentAt := e.Now()
	if err := e.store.MarkSent(finalizeCtx, entry.ID, sentAt); err != nil {
		slog.Error("dispatch log not finalized", "logId", entry.ID, "payslipId", rec.ID, "status", StatusSent, "err", err)
		a.err = fmt.Errorf("delivered but log %s not finalized: %w", entry.ID, err)
		return a
	}
	a.entry.Status = StatusSent
	a.entry.SentAt = &sentAt
	return a
}

// deliver renders and sends; a panic in either step counts as a failed
// attempt so the pending row is still finalized.
func (e *Engine) deliver(ctx context.Context, rec payslip.Record, emp employee.Employee, subject string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panicked: %v", r)
		}
	}()
	doc, err := report.Render(rec, emp)
	if err != nil {
		return err
	}
	return e.transport.Send(ctx, emp.Email, subject, doc.HTML)
}

// DispatchBatch dispatches each distinct id independently, in parallel up to
// Workers. One record's failure never prevents attempts on the others.
func (e *Engine) DispatchBatch(ctx context.Context, ids []string) Summary {
	ids = distinct(ids)
	attempts := make([]attempt, len(ids))

	var g errgroup.Group
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, id := range ids {
		g.Go(func() error {
			attempts[i] = e.attempt(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	summary := summarize(attempts)
	slog.Info("payslip dispatch finished", "requested", len(ids), "sent", summary.Sent, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary
}

func summarize(attempts []attempt) Summary {
	summary := Summary{Errors: []Failure{}}
	for _, a := range attempts {
		switch {
		case !a.attempted:
			summary.Skipped++
		case a.delivered:
			summary.Sent++
		default:
			summary.Failed++
		}
		if a.err != nil {
			summary.Errors = append(summary.Errors, Failure{RecordID: a.recordID, Message: a.err.Error()})
		}
	}
	return summary
}

func (e *Engine) observe(a attempt) {
	if e.Observer == nil {
		return
	}
	switch {
	case !a.attempted:
		e.Observer.RecordDispatch("skipped")
	case a.delivered:
		e.Observer.RecordDispatch(StatusSent)
	default:
		e.Observer.RecordDispatch(StatusFailed)
	}
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
