package payslip

import "errors"

var (
	ErrRecordNotFound = errors.New("payslip not found")
	ErrNoPages        = errors.New("no pages supplied")
)
