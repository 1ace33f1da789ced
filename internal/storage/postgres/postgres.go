package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"volunteerHub/internal/config"
	"volunteerHub/internal/models"
	"volunteerHub/internal/storage"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

//go:embed schema.sql
var schema string

type Storage struct {
	DB *sql.DB
}

func New(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := New(db)
	if err = s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const occurrenceColumns = `event_id, event_datetime_start, capacity, registration_deadline, location, registered_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOccurrence(row rowScanner) (*models.EventOccurrence, error) {
	var (
		occ      models.EventOccurrence
		deadline sql.NullTime
	)

	err := row.Scan(
		&occ.EventID,
		&occ.Start,
		&occ.Capacity,
		&deadline,
		&occ.Location,
		&occ.RegisteredCount,
	)
	if err != nil {
		return nil, err
	}

	occ.Start = occ.Start.UTC()
	if deadline.Valid {
		d := deadline.Time.UTC()
		occ.Deadline = &d
	}

	return &occ, nil
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		reg    models.Registration
		status string
	)

	err := row.Scan(
		&reg.ParticipantID,
		&reg.EventID,
		&reg.Start,
		&status,
		&reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	reg.Status = models.Status(status)
	reg.Start = reg.Start.UTC()
	reg.CreatedAt = reg.CreatedAt.UTC()

	return &reg, nil
}

func (s *Storage) GetOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM event_occurrences
		WHERE event_id = $1 AND event_datetime_start = $2`

	occ, err := scanOccurrence(s.DB.QueryRowContext(ctx, query, key.EventID, key.Start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOccurrenceNotFound
		}
		return nil, fmt.Errorf("failed to get occurrence: %w", err)
	}

	return occ, nil
}

func (s *Storage) ListOccurrences(ctx context.Context) ([]models.EventOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM event_occurrences
		ORDER BY event_datetime_start ASC, event_id ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get occurrences: %w", err)
	}
	defer rows.Close()

	occs := []models.EventOccurrence{}
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		occs = append(occs, *occ)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating occurrences: %w", err)
	}

	return occs, nil
}

func (s *Storage) ListRegistrations(ctx context.Context, key models.OccurrenceKey) ([]models.Registration, error) {
	query := `
		SELECT participant_id, event_id, event_datetime_start, status, created_at
		FROM registrations
		WHERE event_id = $1 AND event_datetime_start = $2
		ORDER BY created_at ASC, participant_id ASC`

	rows, err := s.DB.QueryContext(ctx, query, key.EventID, key.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	return regs, nil
}

// ReconcileRegisteredCounts locks every occurrence row, in key order, before
// recounting.
func (s *Storage) ReconcileRegisteredCounts(ctx context.Context) (int64, error) {
	lockQuery := `
		SELECT event_id
		FROM event_occurrences
		ORDER BY event_id, event_datetime_start
		FOR UPDATE`

	query := `
		UPDATE event_occurrences o
		SET registered_count = LEAST(a.active, o.capacity)
		FROM (
			SELECT e.event_id, e.event_datetime_start, COUNT(r.participant_id) AS active
			FROM event_occurrences e
			LEFT JOIN registrations r
				ON r.event_id = e.event_id
				AND r.event_datetime_start = e.event_datetime_start
				AND r.status <> 'cancelled'
			GROUP BY e.event_id, e.event_datetime_start
		) a
		WHERE o.event_id = a.event_id
			AND o.event_datetime_start = a.event_datetime_start
			AND o.registered_count <> LEAST(a.active, o.capacity)`

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, lockQuery); err != nil {
		return 0, fmt.Errorf("failed to lock occurrences: %w", err)
	}

	// Under READ COMMITTED this statement takes a fresh snapshot, taken after
	// the locks above were granted.
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile registered counts: %w", err)
	}

	fixed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile registered counts: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return fixed, nil
}

type pgTx struct {
	tx *sql.Tx
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func (t *pgTx) LockOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM event_occurrences
		WHERE event_id = $1 AND event_datetime_start = $2
		FOR UPDATE`

	occ, err := scanOccurrence(t.tx.QueryRowContext(ctx, query, key.EventID, key.Start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOccurrenceNotFound
		}
		return nil, fmt.Errorf("failed to lock occurrence: %w", err)
	}

	return occ, nil
}

func (t *pgTx) InsertOccurrence(ctx context.Context, occ models.EventOccurrence) error {
	query := `
		INSERT INTO event_occurrences (` + occurrenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	var deadline sql.NullTime
	if occ.Deadline != nil {
		deadline = sql.NullTime{Time: *occ.Deadline, Valid: true}
	}

	_, err := t.tx.ExecContext(ctx, query,
		occ.EventID,
		occ.Start,
		occ.Capacity,
		deadline,
		occ.Location,
		occ.RegisteredCount,
	)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return storage.ErrOccurrenceExists
		}
		return fmt.Errorf("failed to create occurrence: %w", err)
	}

	return nil
}

func (t *pgTx) DeleteOccurrence(ctx context.Context, key models.OccurrenceKey) error {
	cancelledQuery := `
		DELETE FROM registrations
		WHERE event_id = $1 AND event_datetime_start = $2 AND status = 'cancelled'`

	if _, err := t.tx.ExecContext(ctx, cancelledQuery, key.EventID, key.Start); err != nil {
		return fmt.Errorf("failed to delete cancelled registrations: %w", err)
	}

	query := `
		DELETE FROM event_occurrences
		WHERE event_id = $1 AND event_datetime_start = $2`

	result, err := t.tx.ExecContext(ctx, query, key.EventID, key.Start)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return storage.ErrOccurrenceInUse
		}
		return fmt.Errorf("failed to delete occurrence: %w", err)
	}

	return expectOneRow(result, storage.ErrOccurrenceNotFound)
}

func (t *pgTx) CountActiveRegistrations(ctx context.Context, key models.OccurrenceKey) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND event_datetime_start = $2 AND status <> 'cancelled'`

	var n int
	if err := t.tx.QueryRowContext(ctx, query, key.EventID, key.Start).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count active registrations: %w", err)
	}

	return n, nil
}

func (t *pgTx) IncrementRegisteredCount(ctx context.Context, key models.OccurrenceKey) error {
	query := `
		UPDATE event_occurrences
		SET registered_count = registered_count + 1
		WHERE event_id = $1 AND event_datetime_start = $2
			AND registered_count < capacity`

	result, err := t.tx.ExecContext(ctx, query, key.EventID, key.Start)
	if err != nil {
		return fmt.Errorf("failed to increment registered count: %w", err)
	}

	return expectOneRow(result, storage.ErrOccurrenceFull)
}

func (t *pgTx) DecrementRegisteredCount(ctx context.Context, key models.OccurrenceKey) error {
	query := `
		UPDATE event_occurrences
		SET registered_count = GREATEST(registered_count - 1, 0)
		WHERE event_id = $1 AND event_datetime_start = $2`

	result, err := t.tx.ExecContext(ctx, query, key.EventID, key.Start)
	if err != nil {
		return fmt.Errorf("failed to decrement registered count: %w", err)
	}

	return expectOneRow(result, storage.ErrOccurrenceNotFound)
}

func (t *pgTx) LockRegistration(ctx context.Context, key models.RegistrationKey) (*models.Registration, error) {
	query := `
		SELECT participant_id, event_id, event_datetime_start, status, created_at
		FROM registrations
		WHERE participant_id = $1 AND event_id = $2 AND event_datetime_start = $3
		FOR UPDATE`

	reg, err := scanRegistration(t.tx.QueryRowContext(ctx, query, key.ParticipantID, key.EventID, key.Start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to lock registration: %w", err)
	}

	return reg, nil
}

func (t *pgTx) InsertRegistration(ctx context.Context, reg models.Registration) error {
	query := `
		INSERT INTO registrations (participant_id, event_id, event_datetime_start, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := t.tx.ExecContext(ctx, query,
		reg.ParticipantID,
		reg.EventID,
		reg.Start,
		string(reg.Status),
		reg.CreatedAt,
	)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return storage.ErrRegistrationExists
		case codeForeignKeyViolation:
			return storage.ErrOccurrenceNotFound
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

func (t *pgTx) UpdateRegistrationStatus(ctx context.Context, key models.RegistrationKey, status models.Status) error {
	query := `
		UPDATE registrations
		SET status = $4
		WHERE participant_id = $1 AND event_id = $2 AND event_datetime_start = $3`

	result, err := t.tx.ExecContext(ctx, query, key.ParticipantID, key.EventID, key.Start, string(status))
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	return expectOneRow(result, storage.ErrRegistrationNotFound)
}

func (t *pgTx) DeleteRegistration(ctx context.Context, key models.RegistrationKey) error {
	query := `
		DELETE FROM registrations
		WHERE participant_id = $1 AND event_id = $2 AND event_datetime_start = $3`

	result, err := t.tx.ExecContext(ctx, query, key.ParticipantID, key.EventID, key.Start)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return expectOneRow(result, storage.ErrRegistrationNotFound)
}

var _ storage.Tx = (*pgTx)(nil)
