package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/repo"
)

// LogService implements duty-status entry edits on daily logs.
type LogService struct {
	logs    repo.DailyLogRepo
	entries repo.LogEntryRepo

	// now is swappable in tests. Defaults to time.Now.
	now func() time.Time
}

// NewLogService constructs a LogService.
func NewLogService(logs repo.DailyLogRepo, entries repo.LogEntryRepo) *LogService {
	return &LogService{
		logs:    logs,
		entries: entries,
		now:     time.Now,
	}
}

// CreateEntry validates and records a duty-status interval on a daily log.
// The parent log's aggregate hours are recomputed from its entries as part
// of the same write. Entries may only be added to the current or a future
// day; a completed past day is immutable and yields domain.ErrConflict.
func (s *LogService) CreateEntry(ctx context.Context, dailyLogID uuid.UUID, entry domain.LogEntry) (domain.LogEntry, error) {
	if err := validateEntry(entry); err != nil {
		return domain.LogEntry{}, err
	}

	log, err := s.logs.GetByID(ctx, dailyLogID)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.CreateEntry: %w", err)
	}
	if err := s.checkEditable(log); err != nil {
		return domain.LogEntry{}, err
	}

	entry.DailyLogID = dailyLogID
	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.CreateEntry: %w", err)
	}
	return created, nil
}

// DeleteEntry removes an entry from a daily log, subject to the same
// past-day immutability rule as CreateEntry.
func (s *LogService) DeleteEntry(ctx context.Context, dailyLogID, entryID uuid.UUID) error {
	log, err := s.logs.GetByID(ctx, dailyLogID)
	if err != nil {
		return fmt.Errorf("service.LogService.DeleteEntry: %w", err)
	}
	if err := s.checkEditable(log); err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, dailyLogID, entryID); err != nil {
		return fmt.Errorf("service.LogService.DeleteEntry: %w", err)
	}
	return nil
}

// ListEntries returns a daily log's entries, verifying the log exists so an
// unknown log yields not-found rather than an empty list.
func (s *LogService) ListEntries(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error) {
	if _, err := s.logs.GetByID(ctx, dailyLogID); err != nil {
		return nil, fmt.Errorf("service.LogService.ListEntries: %w", err)
	}
	entries, err := s.entries.ListByDailyLogID(ctx, dailyLogID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.ListEntries: %w", err)
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return entries, nil
}

// checkEditable rejects edits to a log for a calendar day that has already
// ended. Days compare in UTC.
func (s *LogService) checkEditable(log domain.DailyLog) error {
	today := s.now().UTC().Truncate(24 * time.Hour)
	if log.Day.Before(today) {
		return fmt.Errorf("%w: daily log %s covers %s, which has already ended",
			domain.ErrConflict, log.ID, log.Day.Format(time.DateOnly))
	}
	return nil
}

func validateEntry(entry domain.LogEntry) error {
	if !entry.Status.Valid() {
		return fmt.Errorf("%w: unknown duty status %q", domain.ErrValidation, entry.Status)
	}
	if entry.DurationHours <= 0 {
		return fmt.Errorf("%w: duration_hours must be positive (got %g)",
			domain.ErrValidation, entry.DurationHours)
	}
	if entry.StartHour < 0 || entry.StartHour >= 24 {
		return fmt.Errorf("%w: start_hour must be in [0, 24) (got %g)",
			domain.ErrValidation, entry.StartHour)
	}
	if entry.StartHour+entry.DurationHours > 24 {
		return fmt.Errorf("%w: entry must not cross midnight (start_hour %g + duration_hours %g > 24); split it across days",
			domain.ErrValidation, entry.StartHour, entry.DurationHours)
	}
	return nil
}
