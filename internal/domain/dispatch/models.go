package dispatch

import "time"

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Log is one delivery attempt for a payslip. It is written as pending before
// the transport is called and moves exactly once to sent or failed.
type Log struct {
	ID             string     `json:"id"`
	RecordID       string     `json:"payslipId"`
	RecipientEmail string     `json:"recipientEmail"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// HistoryEntry is a log row joined with the payslip and employee it covers.
type HistoryEntry struct {
	Log
	Period       string `json:"period"`
	EmployeeCode string `json:"employeeCode"`
	EmployeeName string `json:"employeeName"`
}

type Failure struct {
	RecordID string `json:"id"`
	Message  string `json:"message"`
}

// Summary aggregates a batch. Sent and Failed count attempts that reached
// those states; Skipped counts records where no attempt was made (unknown
// record, no address, lookup errors). Every Failed or Skipped record has an
// entry in Errors.
type Summary struct {
	Sent    int       `json:"sent"`
	Failed  int       `json:"failed"`
	Skipped int       `json:"skipped"`
	Errors  []Failure `json:"errors"`
}
