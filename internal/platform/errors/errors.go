package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrNoSession       = errors.New("no current session")
)
