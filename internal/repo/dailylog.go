package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"trip-planner-service/internal/domain"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint — here, the one-log-per-(trip, day) rule.
const uniqueViolation = "23505"

// DailyLogRepo defines the persistence operations for DailyLogs.
type DailyLogRepo interface {
	// CreateBatch inserts the given logs (all for the same trip) and returns
	// the persisted records in input order. A duplicate (trip, day) pair
	// yields domain.ErrConflict.
	CreateBatch(ctx context.Context, logs []domain.DailyLog) ([]domain.DailyLog, error)

	// GetByID retrieves a single daily log by its UUID primary key.
	// Returns domain.ErrNotFound if no log with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error)

	// ListByTripID returns all daily logs for a trip ordered by day ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
}

type pgDailyLogRepo struct {
	db db
}

// NewDailyLogRepo constructs a DailyLogRepo backed by the provided db
// connection.
func NewDailyLogRepo(db db) DailyLogRepo {
	return &pgDailyLogRepo{db: db}
}

const dailyLogColumns = `id, trip_id, day, driving_hours, off_duty_hours, status, remarks, created_at`

const insertDailyLog = `
	INSERT INTO daily_logs (trip_id, day, driving_hours, off_duty_hours, status, remarks)
	VALUES (@trip_id, @day, @driving_hours, @off_duty_hours, @status, @remarks)
	RETURNING ` + dailyLogColumns

func (r *pgDailyLogRepo) CreateBatch(ctx context.Context, logs []domain.DailyLog) ([]domain.DailyLog, error) {
	if len(logs) == 0 {
		return []domain.DailyLog{}, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.CreateBatch: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	out := make([]domain.DailyLog, 0, len(logs))
	for _, l := range logs {
		args := pgx.NamedArgs{
			"trip_id":        l.TripID,
			"day":            l.Day,
			"driving_hours":  l.DrivingHours,
			"off_duty_hours": l.OffDutyHours,
			"status":         string(l.Status),
			"remarks":        l.Remarks,
		}
		row := tx.QueryRow(ctx, insertDailyLog, args)
		created, err := scanDailyLog(row)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("repo.DailyLogRepo.CreateBatch: trip %s day %s: %w",
					l.TripID, l.Day.Format("2006-01-02"), domain.ErrConflict)
			}
			return nil, fmt.Errorf("repo.DailyLogRepo.CreateBatch: %w", err)
		}
		out = append(out, created)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.CreateBatch: commit: %w", err)
	}
	return out, nil
}

func (r *pgDailyLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	const q = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	const q = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE trip_id = @trip_id ORDER BY day ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: rows: %w", err)
	}

	return logs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func scanDailyLog(s scanner) (domain.DailyLog, error) {
	var (
		l      domain.DailyLog
		id     pgtype.UUID
		tripID pgtype.UUID
		day    pgtype.Date
		status string
	)

	err := s.Scan(&id, &tripID, &day, &l.DrivingHours, &l.OffDutyHours, &status, &l.Remarks, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyLog{}, domain.ErrNotFound
		}
		return domain.DailyLog{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	l.Day = day.Time
	l.Status = domain.DutyStatus(status)
	return l, nil
}
