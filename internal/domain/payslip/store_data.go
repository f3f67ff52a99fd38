package payslip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `
    id, employee_id, period,
    basic_salary, meal_allowance, overtime_pay, incentive, other_allowance, total_payment,
    national_pension, health_insurance, employment_insurance, long_term_care, income_tax, local_income_tax, total_deduction,
    net_payment, created_at, updated_at`

func (s *Store) CreateBatch(ctx context.Context, batch Batch) (Batch, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO ingestion_batches (source_label, period, total_pages, parsed_count)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, batch.SourceLabel, batch.Period, batch.TotalPages, batch.ParsedCount).Scan(&batch.ID, &batch.CreatedAt)
	if err != nil {
		return Batch{}, fmt.Errorf("create ingestion batch: %w", err)
	}
	return batch, nil
}

// UpsertRecord writes the payslip for (employeeID, period) in one statement.
// The unique index on that pair makes concurrent writers converge on a single
// row; the boolean reports whether this call inserted it.
func (s *Store) UpsertRecord(ctx context.Context, employeeID, period string, f Fields) (Record, bool, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO payslips (
      employee_id, period,
      basic_salary, meal_allowance, overtime_pay, incentive, other_allowance, total_payment,
      national_pension, health_insurance, employment_insurance, long_term_care, income_tax, local_income_tax, total_deduction,
      net_payment
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    ON CONFLICT (employee_id, period) DO UPDATE
      SET basic_salary = EXCLUDED.basic_salary,
          meal_allowance = EXCLUDED.meal_allowance,
          overtime_pay = EXCLUDED.overtime_pay,
          incentive = EXCLUDED.incentive,
          other_allowance = EXCLUDED.other_allowance,
          total_payment = EXCLUDED.total_payment,
          national_pension = EXCLUDED.national_pension,
          health_insurance = EXCLUDED.health_insurance,
          employment_insurance = EXCLUDED.employment_insurance,
          long_term_care = EXCLUDED.long_term_care,
          income_tax = EXCLUDED.income_tax,
          local_income_tax = EXCLUDED.local_income_tax,
          total_deduction = EXCLUDED.total_deduction,
          net_payment = EXCLUDED.net_payment,
          updated_at = now()
    RETURNING `+recordColumns+`, (xmax = 0) AS inserted
  `, employeeID, period,
		f.BasicSalary, f.MealAllowance, f.OvertimePay, f.Incentive, f.OtherAllowance, f.TotalPayment,
		f.NationalPension, f.HealthInsurance, f.EmploymentInsurance, f.LongTermCare, f.IncomeTax, f.LocalIncomeTax, f.TotalDeduction,
		f.NetPayment)

	var rec Record
	var inserted bool
	dest := append(recordDest(&rec), &inserted)
	if err := row.Scan(dest...); err != nil {
		return Record{}, false, fmt.Errorf("upsert payslip: %w", err)
	}
	return rec, inserted, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	if uuid.Validate(id) != nil {
		return Record{}, ErrRecordNotFound
	}
	var rec Record
	err := s.DB.QueryRow(ctx, `SELECT `+recordColumns+` FROM payslips WHERE id = $1`, id).Scan(recordDest(&rec)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ListRecords returns payslips ordered by employee code, optionally limited to
// one period, each with the latest dispatch attempt.
func (s *Store) ListRecords(ctx context.Context, period string) ([]RecordView, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.employee_id, p.period,
           p.basic_salary, p.meal_allowance, p.overtime_pay, p.incentive, p.other_allowance, p.total_payment,
           p.national_pension, p.health_insurance, p.employment_insurance, p.long_term_care, p.income_tax, p.local_income_tax, p.total_deduction,
           p.net_payment, p.created_at, p.updated_at,
           e.employee_code, e.name, COALESCE(e.email, ''),
           l.status, COALESCE(l.error_message, ''), l.sent_at, l.created_at
    FROM payslips p
    JOIN employees e ON e.id = p.employee_id
    LEFT JOIN LATERAL (
      SELECT status, error_message, sent_at, created_at
      FROM dispatch_logs
      WHERE payslip_id = p.id
      ORDER BY created_at DESC
      LIMIT 1
    ) l ON true
    WHERE $1 = '' OR p.period = $1
    ORDER BY e.employee_code, p.period
  `, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecordView
	for rows.Next() {
		var view RecordView
		var status *string
		var errMsg string
		var sentAt, attemptedAt *time.Time
		dest := append(recordDest(&view.Record),
			&view.EmployeeCode, &view.EmployeeName, &view.EmployeeEmail,
			&status, &errMsg, &sentAt, &attemptedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if status != nil && attemptedAt != nil {
			view.LastDispatch = &LastDispatch{
				Status:       *status,
				ErrorMessage: errMsg,
				SentAt:       sentAt,
				CreatedAt:    *attemptedAt,
			}
		}
		out = append(out, view)
	}
	return out, rows.Err()
}

func recordDest(rec *Record) []any {
	return []any{
		&rec.ID, &rec.EmployeeID, &rec.Period,
		&rec.BasicSalary, &rec.MealAllowance, &rec.OvertimePay, &rec.Incentive, &rec.OtherAllowance, &rec.TotalPayment,
		&rec.NationalPension, &rec.HealthInsurance, &rec.EmploymentInsurance, &rec.LongTermCare, &rec.IncomeTax, &rec.LocalIncomeTax, &rec.TotalDeduction,
		&rec.NetPayment, &rec.CreatedAt, &rec.UpdatedAt,
	}
}
