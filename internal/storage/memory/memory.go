// Package memory is a process-local store used for local runs and tests.
// Transactions are serialised by one mutex and work on a copy of the data
// that replaces the live maps only on commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"volunteerHub/internal/models"
	"volunteerHub/internal/storage"
)

type occKey struct {
	eventID int
	start   int64
}

type regKey struct {
	participantID int
	occ           occKey
}

func toOccKey(k models.OccurrenceKey) occKey {
	return occKey{eventID: k.EventID, start: k.Start.UnixNano()}
}

func toRegKey(k models.RegistrationKey) regKey {
	return regKey{participantID: k.ParticipantID, occ: toOccKey(k.Occurrence())}
}

type data struct {
	occurrences   map[occKey]models.EventOccurrence
	registrations map[regKey]models.Registration
}

func (d data) clone() data {
	c := data{
		occurrences:   make(map[occKey]models.EventOccurrence, len(d.occurrences)),
		registrations: make(map[regKey]models.Registration, len(d.registrations)),
	}
	for k, v := range d.occurrences {
		c.occurrences[k] = v
	}
	for k, v := range d.registrations {
		c.registrations[k] = v
	}
	return c
}

type Storage struct {
	mu   sync.Mutex
	data data
}

func New() *Storage {
	return &Storage{
		data: data{
			occurrences:   make(map[occKey]models.EventOccurrence),
			registrations: make(map[regKey]models.Registration),
		},
	}
}

func (s *Storage) Close() error { return nil }

func (s *Storage) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{data: s.data.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.data = tx.data

	return nil
}

func (s *Storage) GetOccurrence(_ context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	occ, ok := s.data.occurrences[toOccKey(key)]
	if !ok {
		return nil, storage.ErrOccurrenceNotFound
	}

	return &occ, nil
}

func (s *Storage) ListOccurrences(_ context.Context) ([]models.EventOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	occs := make([]models.EventOccurrence, 0, len(s.data.occurrences))
	for _, occ := range s.data.occurrences {
		occs = append(occs, occ)
	}

	sort.Slice(occs, func(i, j int) bool {
		if !occs[i].Start.Equal(occs[j].Start) {
			return occs[i].Start.Before(occs[j].Start)
		}
		return occs[i].EventID < occs[j].EventID
	})

	return occs, nil
}

func (s *Storage) ListRegistrations(_ context.Context, key models.OccurrenceKey) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := toOccKey(key)

	var regs []models.Registration
	for k, reg := range s.data.registrations {
		if k.occ == ok {
			regs = append(regs, reg)
		}
	}

	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.Before(regs[j].CreatedAt)
		}
		return regs[i].ParticipantID < regs[j].ParticipantID
	})

	return regs, nil
}

// ReconcileRegisteredCounts rewrites every counter that differs from the
// number of active registrations and returns how many were rewritten.
func (s *Storage) ReconcileRegisteredCounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[occKey]int, len(s.data.occurrences))
	for k, reg := range s.data.registrations {
		if reg.Status.Active() {
			active[k.occ]++
		}
	}

	var fixed int64
	for k, occ := range s.data.occurrences {
		want := min(active[k], occ.Capacity)
		if occ.RegisteredCount != want {
			occ.RegisteredCount = want
			s.data.occurrences[k] = occ
			fixed++
		}
	}

	return fixed, nil
}

type memTx struct {
	data data
}

func (t *memTx) LockOccurrence(_ context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error) {
	occ, ok := t.data.occurrences[toOccKey(key)]
	if !ok {
		return nil, storage.ErrOccurrenceNotFound
	}
	return &occ, nil
}

func (t *memTx) InsertOccurrence(_ context.Context, occ models.EventOccurrence) error {
	k := toOccKey(occ.OccurrenceKey)
	if _, ok := t.data.occurrences[k]; ok {
		return storage.ErrOccurrenceExists
	}
	t.data.occurrences[k] = occ
	return nil
}

func (t *memTx) DeleteOccurrence(_ context.Context, key models.OccurrenceKey) error {
	k := toOccKey(key)
	if _, ok := t.data.occurrences[k]; !ok {
		return storage.ErrOccurrenceNotFound
	}

	for rk, reg := range t.data.registrations {
		if rk.occ != k {
			continue
		}
		if reg.Status.Active() {
			return storage.ErrOccurrenceInUse
		}
		delete(t.data.registrations, rk)
	}

	delete(t.data.occurrences, k)
	return nil
}

func (t *memTx) CountActiveRegistrations(_ context.Context, key models.OccurrenceKey) (int, error) {
	k := toOccKey(key)

	n := 0
	for rk, reg := range t.data.registrations {
		if rk.occ == k && reg.Status.Active() {
			n++
		}
	}
	return n, nil
}

func (t *memTx) IncrementRegisteredCount(_ context.Context, key models.OccurrenceKey) error {
	k := toOccKey(key)

	occ, ok := t.data.occurrences[k]
	if !ok {
		return storage.ErrOccurrenceNotFound
	}
	if occ.RegisteredCount >= occ.Capacity {
		return storage.ErrOccurrenceFull
	}

	occ.RegisteredCount++
	t.data.occurrences[k] = occ
	return nil
}

func (t *memTx) DecrementRegisteredCount(_ context.Context, key models.OccurrenceKey) error {
	k := toOccKey(key)

	occ, ok := t.data.occurrences[k]
	if !ok {
		return storage.ErrOccurrenceNotFound
	}

	occ.RegisteredCount = max(occ.RegisteredCount-1, 0)
	t.data.occurrences[k] = occ
	return nil
}

func (t *memTx) LockRegistration(_ context.Context, key models.RegistrationKey) (*models.Registration, error) {
	reg, ok := t.data.registrations[toRegKey(key)]
	if !ok {
		return nil, storage.ErrRegistrationNotFound
	}
	return &reg, nil
}

func (t *memTx) InsertRegistration(_ context.Context, reg models.Registration) error {
	k := toRegKey(reg.RegistrationKey)
	if _, ok := t.data.occurrences[k.occ]; !ok {
		return storage.ErrOccurrenceNotFound
	}
	if _, ok := t.data.registrations[k]; ok {
		return storage.ErrRegistrationExists
	}
	t.data.registrations[k] = reg
	return nil
}

func (t *memTx) UpdateRegistrationStatus(_ context.Context, key models.RegistrationKey, status models.Status) error {
	k := toRegKey(key)

	reg, ok := t.data.registrations[k]
	if !ok {
		return storage.ErrRegistrationNotFound
	}

	reg.Status = status
	t.data.registrations[k] = reg
	return nil
}

func (t *memTx) DeleteRegistration(_ context.Context, key models.RegistrationKey) error {
	k := toRegKey(key)
	if _, ok := t.data.registrations[k]; !ok {
		return storage.ErrRegistrationNotFound
	}
	delete(t.data.registrations, k)
	return nil
}
