package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"trip-planner-service/internal/domain"
)

// LogEntryRepo defines the persistence operations for LogEntries.
//
// Entry writes and the rollup recomputation of the parent daily log's
// aggregate hours happen inside one transaction: the aggregates are a
// derived cache over the entries and must never drift from them. The
// transaction also serializes concurrent edits to the same daily log.
type LogEntryRepo interface {
	// Create inserts an entry and recomputes the parent log's rollup in the
	// same transaction. Returns domain.ErrNotFound if the daily log does
	// not exist.
	Create(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)

	// Delete removes an entry scoped to its daily log and recomputes the
	// rollup in the same transaction. Returns domain.ErrNotFound if no such
	// entry exists under that log.
	Delete(ctx context.Context, dailyLogID, entryID uuid.UUID) error

	// ListByDailyLogID returns all entries for a daily log in insertion
	// order.
	ListByDailyLogID(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error)

	// ListLogsWithEntries returns a trip's daily logs whose day falls in
	// [from, to], each populated with its entries, ordered by day
	// ascending. It feeds the rolling cycle calculation, which reads the
	// entries and never trusts the rollup fields.
	ListLogsWithEntries(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.DailyLog, error)
}

type pgLogEntryRepo struct {
	db db
}

// NewLogEntryRepo constructs a LogEntryRepo backed by the provided db
// connection.
func NewLogEntryRepo(db db) LogEntryRepo {
	return &pgLogEntryRepo{db: db}
}

const entryColumns = `id, daily_log_id, status, start_hour, duration_hours, remarks, created_at`

func (r *pgLogEntryRepo) Create(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	const q = `
		INSERT INTO log_entries (daily_log_id, status, start_hour, duration_hours, remarks)
		VALUES (@daily_log_id, @status, @start_hour, @duration_hours, @remarks)
		RETURNING ` + entryColumns

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogEntryRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"daily_log_id":   entry.DailyLogID,
		"status":         string(entry.Status),
		"start_hour":     entry.StartHour,
		"duration_hours": entry.DurationHours,
		"remarks":        entry.Remarks,
	}

	row := tx.QueryRow(ctx, q, args)
	created, err := scanLogEntry(row)
	if err != nil {
		// A missing parent surfaces as a foreign key violation.
		return domain.LogEntry{}, fmt.Errorf("repo.LogEntryRepo.Create: daily log %s: %w", entry.DailyLogID, err)
	}

	if err := recomputeRollup(ctx, tx, entry.DailyLogID); err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogEntryRepo.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogEntryRepo.Create: commit: %w", err)
	}
	return created, nil
}

func (r *pgLogEntryRepo) Delete(ctx context.Context, dailyLogID, entryID uuid.UUID) error {
	const q = `DELETE FROM log_entries WHERE id = @id AND daily_log_id = @daily_log_id`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.LogEntryRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": entryID, "daily_log_id": dailyLogID})
	if err != nil {
		return fmt.Errorf("repo.LogEntryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LogEntryRepo.Delete: entry %s: %w", entryID, domain.ErrNotFound)
	}

	if err := recomputeRollup(ctx, tx, dailyLogID); err != nil {
		return fmt.Errorf("repo.LogEntryRepo.Delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.LogEntryRepo.Delete: commit: %w", err)
	}
	return nil
}

// recomputeRollup re-derives the daily log's aggregate hours as a sum over
// its current entries. Driving time feeds driving_hours; off-duty and
// sleeper-berth time feed off_duty_hours. On-duty-not-driving counts toward
// neither aggregate (it only matters to the cycle calculation, which reads
// entries directly).
func recomputeRollup(ctx context.Context, tx pgx.Tx, dailyLogID uuid.UUID) error {
	const q = `
		UPDATE daily_logs SET
			driving_hours = COALESCE((
				SELECT SUM(duration_hours) FROM log_entries
				WHERE daily_log_id = @id AND status = 'driving'), 0),
			off_duty_hours = COALESCE((
				SELECT SUM(duration_hours) FROM log_entries
				WHERE daily_log_id = @id AND status IN ('off_duty', 'sleeper_berth')), 0)
		WHERE id = @id`

	tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": dailyLogID})
	if err != nil {
		return fmt.Errorf("recompute rollup for log %s: %w", dailyLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recompute rollup for log %s: %w", dailyLogID, domain.ErrNotFound)
	}
	return nil
}

func (r *pgLogEntryRepo) ListByDailyLogID(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error) {
	const q = `SELECT ` + entryColumns + ` FROM log_entries WHERE daily_log_id = @daily_log_id ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"daily_log_id": dailyLogID})
	if err != nil {
		return nil, fmt.Errorf("repo.LogEntryRepo.ListByDailyLogID: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LogEntryRepo.ListByDailyLogID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LogEntryRepo.ListByDailyLogID: rows: %w", err)
	}

	return entries, nil
}

func (r *pgLogEntryRepo) ListLogsWithEntries(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.DailyLog, error) {
	const q = `
		SELECT ` + dailyLogColumns + `
		FROM daily_logs
		WHERE trip_id = @trip_id AND day BETWEEN @from AND @to
		ORDER BY day ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.LogEntryRepo.ListLogsWithEntries: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LogEntryRepo.ListLogsWithEntries: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LogEntryRepo.ListLogsWithEntries: rows: %w", err)
	}

	for i := range logs {
		entries, err := r.ListByDailyLogID(ctx, logs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("repo.LogEntryRepo.ListLogsWithEntries: %w", err)
		}
		logs[i].Entries = entries
	}

	return logs, nil
}

func scanLogEntry(s scanner) (domain.LogEntry, error) {
	var (
		e          domain.LogEntry
		id         pgtype.UUID
		dailyLogID pgtype.UUID
		status     string
	)

	err := s.Scan(&id, &dailyLogID, &status, &e.StartHour, &e.DurationHours, &e.Remarks, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LogEntry{}, domain.ErrNotFound
		}
		return domain.LogEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.DailyLogID = uuid.UUID(dailyLogID.Bytes)
	e.Status = domain.DutyStatus(status)
	return e, nil
}
