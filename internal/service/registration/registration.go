// Package registration creates a participant's registration for one event
// occurrence while holding the occurrence's capacity and deadline.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/metrics"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"
	"volunteerHub/internal/storage"
)

type Store interface {
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

type Notifier interface {
	RegistrationCreated(ctx context.Context, reg models.Registration)
}

type Service struct {
	log      *slog.Logger
	store    Store
	now      func() time.Time
	metrics  *metrics.Metrics
	notifier Notifier
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

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
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register checks, in order, that the key is complete, the occurrence
// exists, the participant holds no registration for it yet, its deadline
// has not passed and it has a free seat, then stores a
// "tbd" registration and takes the seat. All of it runs in one transaction
// holding the occurrence row.
func (s *Service) Register(ctx context.Context, key models.RegistrationKey) (err error) {
	const op = "service.registration.Register"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("participant_id", key.ParticipantID),
		slog.Int("event_id", key.EventID),
	)

	defer func() {
		s.metrics.ObserveRegistration(service.Outcome(err))
	}()

	if err = ValidateKey(key); err != nil {
		log.Info("registration rejected", sl.Err(err))
		return err
	}

	key.Start = models.NormalizeTime(key.Start)
	now := models.NormalizeTime(s.now())

	reg := models.Registration{
		RegistrationKey: key,
		Status:          models.StatusTBD,
		CreatedAt:       now,
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		occ, err := tx.LockOccurrence(ctx, key.Occurrence())
		if err != nil {
			if errors.Is(err, storage.ErrOccurrenceNotFound) {
				return service.ErrOccurrenceNotFound
			}
			return err
		}

		// An existing row is a duplicate whatever its status, so it is
		// reported ahead of the deadline and capacity checks.
		_, err = tx.LockRegistration(ctx, key)
		switch {
		case err == nil:
			return service.ErrDuplicateRegistration
		case !errors.Is(err, storage.ErrRegistrationNotFound):
			return err
		}

		if occ.DeadlinePassed(now) {
			return service.ErrDeadlineExpired
		}

		if occ.IsFull() {
			return service.ErrCapacityExceeded
		}

		if err = tx.InsertRegistration(ctx, reg); err != nil {
			switch {
			case errors.Is(err, storage.ErrRegistrationExists):
				return service.ErrDuplicateRegistration
			case errors.Is(err, storage.ErrOccurrenceNotFound):
				return service.ErrOccurrenceNotFound
			}
			return err
		}

		if err = tx.IncrementRegisteredCount(ctx, key.Occurrence()); err != nil {
			if errors.Is(err, storage.ErrOccurrenceFull) {
				return service.ErrCapacityExceeded
			}
			return err
		}

		return nil
	})
	if err != nil {
		err = service.Wrap(op, err)
		if errors.Is(err, service.ErrStore) {
			log.Error("failed to register participant", sl.Err(err))
		} else {
			log.Info("registration rejected", sl.Err(err))
		}
		return err
	}

	log.Info("participant registered")

	if s.notifier != nil {
		s.notifier.RegistrationCreated(ctx, reg)
	}

	return nil
}

// ValidateKey reports every missing part of a registration key at once.
func ValidateKey(key models.RegistrationKey) error {
	var missing []string

	if key.ParticipantID <= 0 {
		missing = append(missing, "Participant_ID")
	}
	if key.EventID <= 0 {
		missing = append(missing, "Event_ID")
	}
	if key.Start.IsZero() {
		missing = append(missing, "EventDateTimeStart")
	}

	if len(missing) > 0 {
		return service.MissingFields(missing...)
	}

	return nil
}
