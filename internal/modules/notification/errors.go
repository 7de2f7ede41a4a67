package notification

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrInvalidType = errors.New("invalid notification type")
	ErrNotFound    = errors.New("notification not found")
)
