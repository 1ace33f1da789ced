package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"
	"volunteerHub/internal/storage"
)

type Store interface {
	WithinTx(ctx context.Context, fn storage.TxFunc) error
	GetOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error)
	ListOccurrences(ctx context.Context) ([]models.EventOccurrence, error)
	ListRegistrations(ctx context.Context, key models.OccurrenceKey) ([]models.Registration, error)
}

type Service struct {
	log   *slog.Logger
	store Store
}

func New(log *slog.Logger, store Store) *Service {
	return &Service{log: log, store: store}
}

func (s *Service) CreateOccurrence(ctx context.Context, occ models.EventOccurrence) (*models.EventOccurrence, error) {
	const op = "service.schedule.CreateOccurrence"

	log := s.log.With(slog.String("op", op), slog.Int("event_id", occ.EventID))

	if err := validateOccurrence(occ); err != nil {
		return nil, err
	}

	occ.Start = models.NormalizeTime(occ.Start)
	occ.RegisteredCount = 0
	if occ.Deadline != nil {
		d := models.NormalizeTime(*occ.Deadline)
		occ.Deadline = &d
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		err := tx.InsertOccurrence(ctx, occ)
		if errors.Is(err, storage.ErrOccurrenceExists) {
			return service.ErrOccurrenceExists
		}
		return err
	})
	if err != nil {
		err = service.Wrap(op, err)
		if errors.Is(err, service.ErrStore) {
			log.Error("failed to create occurrence", sl.Err(err))
		}
		return nil, err
	}

	log.Info("occurrence scheduled", slog.String("occurrence", occ.String()))

	return &occ, nil
}

func validateOccurrence(occ models.EventOccurrence) error {
	if occ.EventID <= 0 || occ.Start.IsZero() {
		return service.MissingFields("Event_ID", "EventDateTimeStart")
	}
	if occ.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", service.ErrInvalidOccurrence)
	}
	return nil
}

// GetOccurrence returns the occurrence with its registrations, oldest first.
func (s *Service) GetOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, []models.Registration, error) {
	const op = "service.schedule.GetOccurrence"

	key.Start = models.NormalizeTime(key.Start)

	occ, err := s.store.GetOccurrence(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrOccurrenceNotFound) {
			return nil, nil, service.ErrOccurrenceNotFound
		}
		return nil, nil, service.Wrap(op, err)
	}

	regs, err := s.store.ListRegistrations(ctx, key)
	if err != nil {
		return nil, nil, service.Wrap(op, err)
	}

	if regs == nil {
		regs = []models.Registration{}
	}

	return occ, regs, nil
}

func (s *Service) ListOccurrences(ctx context.Context) ([]models.EventOccurrence, error) {
	const op = "service.schedule.ListOccurrences"

	occs, err := s.store.ListOccurrences(ctx)
	if err != nil {
		return nil, service.Wrap(op, err)
	}

	if occs == nil {
		occs = []models.EventOccurrence{}
	}

	return occs, nil
}

// DeleteOccurrence refuses while any registration still holds a seat.
// Cancelled registrations are deleted along with the occurrence.
func (s *Service) DeleteOccurrence(ctx context.Context, key models.OccurrenceKey) error {
	const op = "service.schedule.DeleteOccurrence"

	log := s.log.With(slog.String("op", op), slog.Int("event_id", key.EventID))

	key.Start = models.NormalizeTime(key.Start)

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.LockOccurrence(ctx, key); err != nil {
			if errors.Is(err, storage.ErrOccurrenceNotFound) {
				return service.ErrOccurrenceNotFound
			}
			return err
		}

		active, err := tx.CountActiveRegistrations(ctx, key)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: %d", service.ErrOccurrenceInUse, active)
		}

		err = tx.DeleteOccurrence(ctx, key)
		switch {
		case errors.Is(err, storage.ErrOccurrenceInUse):
			return service.ErrOccurrenceInUse
		case errors.Is(err, storage.ErrOccurrenceNotFound):
			return service.ErrOccurrenceNotFound
		}
		return err
	})
	if err != nil {
		err = service.Wrap(op, err)
		if errors.Is(err, service.ErrStore) {
			log.Error("failed to delete occurrence", sl.Err(err))
		} else {
			log.Info("occurrence delete rejected", sl.Err(err))
		}
		return err
	}

	log.Info("occurrence deleted", slog.String("occurrence", key.String()))

	return nil
}
