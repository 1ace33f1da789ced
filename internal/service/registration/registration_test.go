package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"volunteerHub/internal/lib/logger/handlers/slogdiscard"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"
	"volunteerHub/internal/storage"
	"volunteerHub/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	start = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	occA  = models.OccurrenceKey{EventID: 1, Start: start}
)

func keyFor(participant int) models.RegistrationKey {
	return models.RegistrationKey{ParticipantID: participant, EventID: occA.EventID, Start: occA.Start}
}

func newStore(t *testing.T, occ models.EventOccurrence) *memory.Storage {
	t.Helper()

	s := memory.New()
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.InsertOccurrence(ctx, occ)
	})
	require.NoError(t, err)

	return s
}

func registeredCount(t *testing.T, s *memory.Storage) int {
	t.Helper()

	occ, err := s.GetOccurrence(context.Background(), occA)
	require.NoError(t, err)

	return occ.RegisteredCount
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []models.Registration
}

func (n *recordingNotifier) RegistrationCreated(_ context.Context, reg models.Registration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, reg)
}

type failingStore struct {
	err error
}

func (f failingStore) WithinTx(context.Context, storage.TxFunc) error {
	return f.err
}

func TestRegister_FillsToCapacity(t *testing.T) {
	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: 2})
	n := &recordingNotifier{}
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }), WithNotifier(n))

	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, keyFor(1)))
	require.NoError(t, svc.Register(ctx, keyFor(2)))

	err := svc.Register(ctx, keyFor(3))
	require.ErrorIs(t, err, service.ErrCapacityExceeded)

	assert.Equal(t, 2, registeredCount(t, s))

	regs, err := s.ListRegistrations(ctx, occA)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	for _, reg := range regs {
		assert.Equal(t, models.StatusTBD, reg.Status)
		assert.Equal(t, now, reg.CreatedAt)
	}

	assert.Len(t, n.created, 2)
}

func TestRegister_ConcurrentRequestsNeverOverbook(t *testing.T) {
	const (
		capacity = 5
		requests = 40
	)

	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: capacity})
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)

	for i := 1; i <= requests; i++ {
		wg.Add(1)
		go func(participant int) {
			defer wg.Done()

			err := svc.Register(context.Background(), keyFor(participant))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrCapacityExceeded):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacity, ok)
	assert.Equal(t, requests-capacity, full)
	assert.Equal(t, capacity, registeredCount(t, s))
}

func TestRegister_Rejections(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		occ     models.EventOccurrence
		key     models.RegistrationKey
		wantErr error
	}{
		{
			name:    "deadline passed with seats free",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 10, Deadline: &past},
			key:     keyFor(1),
			wantErr: service.ErrDeadlineExpired,
		},
		{
			name:    "occurrence missing",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 10},
			key:     models.RegistrationKey{ParticipantID: 1, EventID: 99, Start: start},
			wantErr: service.ErrOccurrenceNotFound,
		},
		{
			name:    "missing participant",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 10},
			key:     models.RegistrationKey{EventID: 1, Start: start},
			wantErr: service.ErrMissingField,
		},
		{
			name:    "missing start",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 10},
			key:     models.RegistrationKey{ParticipantID: 1, EventID: 1},
			wantErr: service.ErrMissingField,
		},
		{
			name:    "deadline checked before capacity",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 1, RegisteredCount: 1, Deadline: &past},
			key:     keyFor(1),
			wantErr: service.ErrDeadlineExpired,
		},
		{
			name:    "full before deadline",
			occ:     models.EventOccurrence{OccurrenceKey: occA, Capacity: 1, RegisteredCount: 1, Deadline: &future},
			key:     keyFor(1),
			wantErr: service.ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, tt.occ)
			svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

			err := svc.Register(context.Background(), tt.key)
			require.ErrorIs(t, err, tt.wantErr)

			regs, err := s.ListRegistrations(context.Background(), occA)
			require.NoError(t, err)
			assert.Empty(t, regs)
			assert.Equal(t, tt.occ.RegisteredCount, registeredCount(t, s))
		})
	}
}

func TestRegister_DeadlineInstantIsOpen(t *testing.T) {
	deadline := now
	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: 1, Deadline: &deadline})
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

	require.NoError(t, svc.Register(context.Background(), keyFor(1)))
}

func TestRegister_Duplicate(t *testing.T) {
	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: 5})
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

	require.NoError(t, svc.Register(context.Background(), keyFor(1)))

	err := svc.Register(context.Background(), keyFor(1))
	require.ErrorIs(t, err, service.ErrDuplicateRegistration)
	assert.Equal(t, 1, registeredCount(t, s))
}

func TestRegister_DuplicateReportedBeforeOtherChecks(t *testing.T) {
	deadline := now.Add(time.Hour)

	tests := []struct {
		name  string
		occ   models.EventOccurrence
		clock time.Time
		prior models.Status
	}{
		{
			name:  "occurrence full after own registration",
			occ:   models.EventOccurrence{OccurrenceKey: occA, Capacity: 1},
			clock: now,
			prior: models.StatusTBD,
		},
		{
			name:  "deadline passed after own registration",
			occ:   models.EventOccurrence{OccurrenceKey: occA, Capacity: 5, Deadline: &deadline},
			clock: deadline.Add(time.Minute),
			prior: models.StatusTBD,
		},
		{
			name:  "cancelled registration on full occurrence",
			occ:   models.EventOccurrence{OccurrenceKey: occA, Capacity: 1, RegisteredCount: 1},
			clock: now,
			prior: models.StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, tt.occ)

			err := s.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
				if err := tx.InsertRegistration(ctx, models.Registration{RegistrationKey: keyFor(1), Status: tt.prior, CreatedAt: now}); err != nil {
					return err
				}
				if tt.prior.Active() {
					return tx.IncrementRegisteredCount(ctx, occA)
				}
				return nil
			})
			require.NoError(t, err)

			countBefore := registeredCount(t, s)

			svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return tt.clock }))

			err = svc.Register(context.Background(), keyFor(1))
			require.ErrorIs(t, err, service.ErrDuplicateRegistration)
			assert.NotErrorIs(t, err, service.ErrCapacityExceeded)
			assert.NotErrorIs(t, err, service.ErrDeadlineExpired)
			assert.Equal(t, countBefore, registeredCount(t, s))
		})
	}
}

func TestRegister_StartInOtherZone(t *testing.T) {
	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: 5})
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

	key := keyFor(1)
	key.Start = start.In(time.FixedZone("UTC+2", 2*60*60))

	require.NoError(t, svc.Register(context.Background(), key))
	assert.Equal(t, 1, registeredCount(t, s))
}

func TestRegister_SubMicrosecondStart(t *testing.T) {
	s := newStore(t, models.EventOccurrence{OccurrenceKey: occA, Capacity: 5})
	svc := New(slogdiscard.NewDiscardLogger(), s, WithClock(func() time.Time { return now }))

	key := keyFor(1)
	key.Start = start.Add(999 * time.Nanosecond)

	require.NoError(t, svc.Register(context.Background(), key))

	regs, err := s.ListRegistrations(context.Background(), occA)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, start, regs[0].Start)
}

func TestRegister_StoreFailure(t *testing.T) {
	svc := New(slogdiscard.NewDiscardLogger(), failingStore{err: errors.New("connection lost")})

	err := svc.Register(context.Background(), keyFor(1))
	require.ErrorIs(t, err, service.ErrStore)

	var se *service.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "service.registration.Register", se.Op)
}

func TestValidateKey(t *testing.T) {
	err := ValidateKey(models.RegistrationKey{})
	require.ErrorIs(t, err, service.ErrMissingField)
	assert.EqualError(t, err, "missing required field: Participant_ID, Event_ID, EventDateTimeStart")

	assert.NoError(t, ValidateKey(keyFor(1)))
}
