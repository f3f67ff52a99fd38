package employee

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Resolve returns the employee registered under code, creating a bare record
// (no email) when none exists. An existing employee is never modified:
// payslip data is not authoritative for the registry.
func (s *Service) Resolve(ctx context.Context, code, name, hireDate string) (Employee, bool, error) {
	existing, err := s.store.FindByCode(ctx, code)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Employee{}, false, err
	}
	return s.store.CreateIfAbsent(ctx, Employee{
		EmployeeCode: code,
		Name:         name,
		HireDate:     ParseHireDate(hireDate),
	})
}

// ParseHireDate accepts YYYY-MM-DD and returns nil for anything else.
func ParseHireDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	emp.EmployeeCode = strings.TrimSpace(emp.EmployeeCode)
	if emp.EmployeeCode == "" {
		return Employee{}, ErrCodeRequired
	}
	emp.Email = strings.TrimSpace(emp.Email)
	return s.store.Create(ctx, emp)
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (Employee, error) {
	upd.Email = strings.TrimSpace(upd.Email)
	return s.store.Update(ctx, id, upd)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.store.Deactivate(ctx, id)
}
