package employee

import "time"

type Employee struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employeeCode"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Department   string     `json:"department,omitempty"`
	Position     string     `json:"position,omitempty"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// HasAddress reports whether a payslip can be delivered to the employee.
func (e Employee) HasAddress() bool {
	return e.Email != ""
}

// Update carries registry edits. Empty strings leave a field unchanged.
type Update struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type ImportError struct {
	EmployeeCode string `json:"employeeCode"`
	Message      string `json:"message"`
}

type ImportResult struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Errors  []ImportError `json:"errors"`
}
