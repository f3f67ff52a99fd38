package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreatePending(ctx context.Context, recordID, recipient, subject string) (Log, error) {
	entry := Log{RecordID: recordID, RecipientEmail: recipient, Subject: subject, Status: StatusPending}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO dispatch_logs (payslip_id, recipient_email, subject, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, recordID, recipient, subject, StatusPending).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return Log{}, fmt.Errorf("create dispatch log: %w", err)
	}
	return entry, nil
}

func (s *Store) MarkSent(ctx context.Context, id string, at time.Time) error {
	return s.finalize(ctx, id, `
    UPDATE dispatch_logs SET status = $2, sent_at = $3
    WHERE id = $1 AND status = 'pending'
  `, id, StatusSent, at)
}

func (s *Store) MarkFailed(ctx context.Context, id, message string) error {
	return s.finalize(ctx, id, `
    UPDATE dispatch_logs SET status = $2, error_message = $3
    WHERE id = $1 AND status = 'pending'
  `, id, StatusFailed, message)
}

// finalize runs a pending-guarded transition so a row changes state at most
// once.
func (s *Store) finalize(ctx context.Context, id, sql string, args ...any) error {
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var status string
	err = s.DB.QueryRow(ctx, `SELECT status FROM dispatch_logs WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLogNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrAlreadyFinal, status)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.id, l.payslip_id, l.recipient_email, l.subject, l.status,
           COALESCE(l.error_message, ''), l.sent_at, l.created_at,
           p.period, e.employee_code, e.name
    FROM dispatch_logs l
    JOIN payslips p ON p.id = l.payslip_id
    JOIN employees e ON e.id = p.employee_id
    ORDER BY l.created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.RecordID, &h.RecipientEmail, &h.Subject, &h.Status,
			&h.ErrorMessage, &h.SentAt, &h.CreatedAt,
			&h.Period, &h.EmployeeCode, &h.EmployeeName); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
