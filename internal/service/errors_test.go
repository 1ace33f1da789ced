package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("op", nil))

	assert.Same(t, ErrCapacityExceeded, Wrap("op", ErrCapacityExceeded))

	missing := MissingFields("Participant_ID")
	assert.Equal(t, missing, Wrap("op", missing))

	raw := errors.New("connection refused")
	err := Wrap("service.registration.Register", raw)

	var se *StoreError
	assert.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, "service.registration.Register: connection refused", err.Error())

	assert.Same(t, err, Wrap("other", err), "already wrapped errors are kept")
}

func TestMissingFields(t *testing.T) {
	err := MissingFields("Event_ID", "EventDateTimeStart")

	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, "missing required field: Event_ID, EventDateTimeStart", err.Error())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "missing_field", Outcome(MissingFields("x")))
	assert.Equal(t, "capacity_exceeded", Outcome(ErrCapacityExceeded))
	assert.Equal(t, "duplicate", Outcome(ErrDuplicateRegistration))
	assert.Equal(t, "error", Outcome(&StoreError{Op: "op", Err: errors.New("boom")}))
}
