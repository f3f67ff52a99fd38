package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `
    id, employee_code, name,
    COALESCE(email, ''), COALESCE(department, ''), COALESCE(position, ''),
    hire_date, is_active, created_at, updated_at`

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	if uuid.Validate(id) != nil {
		return Employee{}, ErrNotFound
	}
	return scanOne(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
}

func (s *Store) FindByCode(ctx context.Context, code string) (Employee, error) {
	return scanOne(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_code = $1`, code))
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_active
    ORDER BY employee_code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(employeeDest(&emp)...); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	created, err := scanOne(s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, name, email, department, position, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+employeeColumns,
		emp.EmployeeCode, emp.Name, nullIfEmpty(emp.Email), nullIfEmpty(emp.Department), nullIfEmpty(emp.Position), emp.HireDate))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrDuplicateCode
		}
		return Employee{}, err
	}
	return created, nil
}

// CreateIfAbsent inserts emp unless its code is already taken, in which case
// the existing row is returned untouched. The unique index on employee_code
// settles races between concurrent ingestions.
func (s *Store) CreateIfAbsent(ctx context.Context, emp Employee) (Employee, bool, error) {
	created, err := scanOne(s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, name, hire_date)
    VALUES ($1,$2,$3)
    ON CONFLICT (employee_code) DO NOTHING
    RETURNING `+employeeColumns,
		emp.EmployeeCode, emp.Name, emp.HireDate))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Employee{}, false, fmt.Errorf("create employee %s: %w", emp.EmployeeCode, err)
	}
	existing, err := s.FindByCode(ctx, emp.EmployeeCode)
	if err != nil {
		return Employee{}, false, err
	}
	return existing, false, nil
}

// UpsertRegistry applies a registry row keyed by employee code. Blank values
// keep what is already stored.
func (s *Store) UpsertRegistry(ctx context.Context, emp Employee) (Employee, bool, error) {
	var out Employee
	var inserted bool
	dest := append(employeeDest(&out), &inserted)
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, name, email, department, position)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_code) DO UPDATE
      SET name = COALESCE(NULLIF(EXCLUDED.name, ''), employees.name),
          email = COALESCE(EXCLUDED.email, employees.email),
          department = COALESCE(EXCLUDED.department, employees.department),
          position = COALESCE(EXCLUDED.position, employees.position),
          updated_at = now()
    RETURNING `+employeeColumns+`, (xmax = 0) AS inserted
  `, emp.EmployeeCode, emp.Name, nullIfEmpty(emp.Email), nullIfEmpty(emp.Department), nullIfEmpty(emp.Position)).Scan(dest...)
	if err != nil {
		return Employee{}, false, err
	}
	return out, inserted, nil
}

func (s *Store) Update(ctx context.Context, id string, upd Update) (Employee, error) {
	if uuid.Validate(id) != nil {
		return Employee{}, ErrNotFound
	}
	return scanOne(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = COALESCE(NULLIF($2, ''), name),
        email = COALESCE($3, email),
        department = COALESCE($4, department),
        position = COALESCE($5, position),
        updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns,
		id, upd.Name, nullIfEmpty(upd.Email), nullIfEmpty(upd.Department), nullIfEmpty(upd.Position)))
}

func (s *Store) Deactivate(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}
	tag, err := s.DB.Exec(ctx, `UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOne(row pgx.Row) (Employee, error) {
	var emp Employee
	if err := row.Scan(employeeDest(&emp)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return emp, nil
}

func employeeDest(emp *Employee) []any {
	return []any{
		&emp.ID, &emp.EmployeeCode, &emp.Name,
		&emp.Email, &emp.Department, &emp.Position,
		&emp.HireDate, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	}
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
