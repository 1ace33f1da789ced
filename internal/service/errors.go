// Package service holds the error taxonomy shared by the registration,
// attendance and schedule services.
package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField          = errors.New("missing required field")
	ErrOccurrenceNotFound    = errors.New("occurrence not found")
	ErrDeadlineExpired       = errors.New("registration deadline has passed")
	ErrCapacityExceeded      = errors.New("event is full")
	ErrDuplicateRegistration = errors.New("participant is already registered for this occurrence")
	ErrInvalidAction         = errors.New("invalid action")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrInvalidOccurrence     = errors.New("invalid occurrence")
	ErrOccurrenceExists      = errors.New("occurrence already exists")
	ErrOccurrenceInUse       = errors.New("occurrence has active registrations")

	// ErrStore matches every *StoreError.
	ErrStore = errors.New("store failure")
)

var domainErrors = []error{
	ErrMissingField,
	ErrOccurrenceNotFound,
	ErrDeadlineExpired,
	ErrCapacityExceeded,
	ErrDuplicateRegistration,
	ErrInvalidAction,
	ErrRegistrationNotFound,
	ErrInvalidOccurrence,
	ErrOccurrenceExists,
	ErrOccurrenceInUse,
}

// StoreError carries a failure of the underlying store. Its message is for
// logs only and must not reach clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// Wrap returns domain errors unchanged and wraps anything else in a StoreError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	return &StoreError{Op: op, Err: err}
}

func MissingFields(fields ...string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(fields, ", "))
}

// Outcome is the metrics label for the result of an operation.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrOccurrenceNotFound):
		return "occurrence_not_found"
	case errors.Is(err, ErrDeadlineExpired):
		return "deadline_expired"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDuplicateRegistration):
		return "duplicate"
	case errors.Is(err, ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, ErrRegistrationNotFound):
		return "registration_not_found"
	default:
		return "error"
	}
}
