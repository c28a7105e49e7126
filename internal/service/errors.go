package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingFields       = errors.New("name, email and password are required")
	ErrInvalidToken        = errors.New("invalid token")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrNoProfile           = errors.New("no profile saved")
	ErrNoPlan              = errors.New("no plan generated")
	ErrGenerationFailed    = errors.New("plan generation failed")
	ErrSchemaMismatch      = errors.New("plan does not match the response schema")
	ErrExportNotConfigured = errors.New("plan export is not configured")
)

// SchemaMismatchError lists the problems found in a generated plan. It
// matches both ErrSchemaMismatch and ErrGenerationFailed.
type SchemaMismatchError struct {
	Problems []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaMismatch, strings.Join(e.Problems, "; "))
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch || target == ErrGenerationFailed
}
