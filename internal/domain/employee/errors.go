package employee

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrDuplicateCode = errors.New("employee code already exists")
	ErrCodeRequired  = errors.New("employee code is required")
	ErrInvalidCSV    = errors.New("invalid employee csv")
)
