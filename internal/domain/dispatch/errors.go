package dispatch

import "errors"

var (
	ErrNoAddress      = errors.New("employee has no registered email address")
	ErrRecordNotFound = errors.New("payslip not found")
	ErrLogNotFound    = errors.New("dispatch log not found")
	ErrAlreadyFinal   = errors.New("dispatch log already finalized")
)

// DeliveryError wraps a transport failure. The attempt was recorded as failed.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
