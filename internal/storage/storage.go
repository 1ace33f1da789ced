package storage

import (
	"context"
	"errors"

	"volunteerHub/internal/models"
)

var (
	ErrOccurrenceNotFound   = errors.New("occurrence not found")
	ErrOccurrenceExists     = errors.New("occurrence already exists")
	ErrOccurrenceFull       = errors.New("occurrence is full")
	ErrOccurrenceInUse      = errors.New("occurrence has active registrations")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("registration already exists")
)

// Tx is the set of statements the services run inside one transaction.
// Implementations lock rows returned by the Lock* methods until the
// transaction ends.
type Tx interface {
	LockOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error)
	InsertOccurrence(ctx context.Context, occ models.EventOccurrence) error
	// DeleteOccurrence removes the occurrence together with its cancelled
	// registrations and fails with ErrOccurrenceInUse while active ones remain.
	DeleteOccurrence(ctx context.Context, key models.OccurrenceKey) error
	CountActiveRegistrations(ctx context.Context, key models.OccurrenceKey) (int, error)

	// IncrementRegisteredCount fails with ErrOccurrenceFull instead of
	// raising the counter past capacity.
	IncrementRegisteredCount(ctx context.Context, key models.OccurrenceKey) error
	// DecrementRegisteredCount never takes the counter below zero.
	DecrementRegisteredCount(ctx context.Context, key models.OccurrenceKey) error

	LockRegistration(ctx context.Context, key models.RegistrationKey) (*models.Registration, error)
	InsertRegistration(ctx context.Context, reg models.Registration) error
	UpdateRegistrationStatus(ctx context.Context, key models.RegistrationKey, status models.Status) error
	DeleteRegistration(ctx context.Context, key models.RegistrationKey) error
}

// TxFunc is committed when it returns nil and rolled back otherwise.
type TxFunc func(ctx context.Context, tx Tx) error
