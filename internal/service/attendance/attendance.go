// Package attendance moves registrations between tbd, attended, no-show and
// cancelled and keeps the occurrence's registered count in step.
package attendance

import (
	"context"
	"errors"
	"log/slog"

	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/metrics"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"
	"volunteerHub/internal/service/registration"
	"volunteerHub/internal/storage"
)

type Store interface {
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

type Notifier interface {
	RegistrationStatusChanged(ctx context.Context, reg models.Registration, prev models.Status)
	RegistrationRemoved(ctx context.Context, reg models.Registration)
}

type Service struct {
	log      *slog.Logger
	store    Store
	metrics  *metrics.Metrics
	notifier Notifier
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func New(log *slog.Logger, store Store, opts ...Option) *Service {
	s := &Service{
		log:   log,
		store: store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateRegistration applies action to the registration and returns it.
//
// Any status may move to any other. The first cancellation frees the seat;
// cancelling again changes nothing. Leaving "cancelled" for an active status
// takes a seat back and fails with ErrCapacityExceeded when none is free.
func (s *Service) UpdateRegistration(ctx context.Context, key models.RegistrationKey, action models.Action) (_ *models.Registration, err error) {
	const op = "service.attendance.UpdateRegistration"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("participant_id", key.ParticipantID),
		slog.Int("event_id", key.EventID),
		slog.String("action", string(action)),
	)

	defer func() {
		s.metrics.ObserveTransition(metricAction(action), service.Outcome(err))
	}()

	if err = registration.ValidateKey(key); err != nil {
		log.Info("update rejected", sl.Err(err))
		return nil, err
	}

	target, ok := action.Target()
	if !ok {
		log.Info("update rejected", sl.Err(service.ErrInvalidAction))
		return nil, service.ErrInvalidAction
	}

	key.Start = models.NormalizeTime(key.Start)

	var (
		updated models.Registration
		prev    models.Status
	)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		// Lock order is occurrence, then registration, as in registration.Register.
		if _, err := tx.LockOccurrence(ctx, key.Occurrence()); err != nil {
			if errors.Is(err, storage.ErrOccurrenceNotFound) {
				return service.ErrRegistrationNotFound
			}
			return err
		}

		reg, err := tx.LockRegistration(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrRegistrationNotFound) {
				return service.ErrRegistrationNotFound
			}
			return err
		}

		prev = reg.Status

		if err = tx.UpdateRegistrationStatus(ctx, key, target); err != nil {
			if errors.Is(err, storage.ErrRegistrationNotFound) {
				return service.ErrRegistrationNotFound
			}
			return err
		}

		switch {
		case prev.Active() && !target.Active():
			err = tx.DecrementRegisteredCount(ctx, key.Occurrence())
		case !prev.Active() && target.Active():
			err = tx.IncrementRegisteredCount(ctx, key.Occurrence())
			if errors.Is(err, storage.ErrOccurrenceFull) {
				return service.ErrCapacityExceeded
			}
		}
		if err != nil {
			return err
		}

		updated = *reg
		updated.Status = target

		return nil
	})
	if err != nil {
		err = service.Wrap(op, err)
		if errors.Is(err, service.ErrStore) {
			log.Error("failed to update registration", sl.Err(err))
		} else {
			log.Info("update rejected", sl.Err(err))
		}
		return nil, err
	}

	log.Info("registration updated",
		slog.String("previous_status", string(prev)),
		slog.String("status", string(target)),
	)

	if s.notifier != nil {
		s.notifier.RegistrationStatusChanged(ctx, updated, prev)
	}

	return &updated, nil
}

// RemoveRegistration hard-deletes a registration, freeing its seat when it
// still held one.
func (s *Service) RemoveRegistration(ctx context.Context, key models.RegistrationKey) error {
	const op = "service.attendance.RemoveRegistration"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("participant_id", key.ParticipantID),
		slog.Int("event_id", key.EventID),
	)

	if err := registration.ValidateKey(key); err != nil {
		return err
	}

	key.Start = models.NormalizeTime(key.Start)

	var removed models.Registration

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.LockOccurrence(ctx, key.Occurrence()); err != nil {
			if errors.Is(err, storage.ErrOccurrenceNotFound) {
				return service.ErrRegistrationNotFound
			}
			return err
		}

		reg, err := tx.LockRegistration(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrRegistrationNotFound) {
				return service.ErrRegistrationNotFound
			}
			return err
		}

		if err = tx.DeleteRegistration(ctx, key); err != nil {
			return err
		}

		if reg.Status.Active() {
			if err = tx.DecrementRegisteredCount(ctx, key.Occurrence()); err != nil {
				return err
			}
		}

		removed = *reg

		return nil
	})
	if err != nil {
		err = service.Wrap(op, err)
		if errors.Is(err, service.ErrStore) {
			log.Error("failed to remove registration", sl.Err(err))
		}
		return err
	}

	log.Info("registration removed", slog.String("status", string(removed.Status)))

	if s.notifier != nil {
		s.notifier.RegistrationRemoved(ctx, removed)
	}

	return nil
}

// metricAction keeps the label set bounded whatever clients send.
func metricAction(a models.Action) string {
	if _, ok := a.Target(); ok {
		return string(a)
	}
	return "invalid"
}
