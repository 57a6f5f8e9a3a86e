package models

import "errors"

// Error kinds shared by the repository, the services and the transport.
// Callers wrap them with fmt.Errorf("...: %w", ErrX) and match with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence error")
	ErrUnauthorized = errors.New("unauthorized")
)
