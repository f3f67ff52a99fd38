package payslip

import "time"

// Fields holds the monetary figures of one payslip, in whole won.
type Fields struct {
	BasicSalary    int64 `json:"basicSalary"`
	MealAllowance  int64 `json:"mealAllowance"`
	OvertimePay    int64 `json:"overtimePay"`
	Incentive      int64 `json:"incentive"`
	OtherAllowance int64 `json:"otherAllowance"`
	TotalPayment   int64 `json:"totalPayment"`

	NationalPension     int64 `json:"nationalPension"`
	HealthInsurance     int64 `json:"healthInsurance"`
	EmploymentInsurance int64 `json:"employmentInsurance"`
	LongTermCare        int64 `json:"longTermCare"`
	IncomeTax           int64 `json:"incomeTax"`
	LocalIncomeTax      int64 `json:"localIncomeTax"`
	TotalDeduction      int64 `json:"totalDeduction"`

	// NetPayment is taken from the source document, not recomputed.
	NetPayment int64 `json:"netPayment"`
}

// ParsedRecord is one payslip page read from raw text, before it is matched
// to an employee.
type ParsedRecord struct {
	EmployeeCode string `json:"employeeCode"`
	EmployeeName string `json:"employeeName"`
	HireDate     string `json:"hireDate,omitempty"`
	Period       string `json:"period"`
	PageNumber   int    `json:"pageNumber"`
	Fields
}

// Record is a stored payslip, unique per (EmployeeID, Period).
type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Period     string    `json:"period"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Fields
}

type Batch struct {
	ID          string    `json:"id"`
	SourceLabel string    `json:"sourceLabel"`
	Period      string    `json:"period"`
	TotalPages  int       `json:"totalPages"`
	ParsedCount int       `json:"parsedCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LastDispatch summarises the most recent dispatch attempt of a record.
type LastDispatch struct {
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RecordView is a record joined with its owner and latest dispatch attempt.
type RecordView struct {
	Record
	EmployeeCode  string        `json:"employeeCode"`
	EmployeeName  string        `json:"employeeName"`
	EmployeeEmail string        `json:"employeeEmail,omitempty"`
	LastDispatch  *LastDispatch `json:"lastDispatch,omitempty"`
}
