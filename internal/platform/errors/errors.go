package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrMissingColumns = errors.New("missing expected column")
	ErrNotLoaded      = errors.New("dataset not loaded")
)
