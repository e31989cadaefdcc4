package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/service"
)

// frozen clock for the past-day rule: "today" is 2026-03-10 UTC.
var frozenNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func newLogService(logs *mockDailyLogRepo, entries *mockLogEntryRepo) *service.LogService {
	svc := service.NewLogService(logs, entries)
	service.SetNow(svc, func() time.Time { return frozenNow })
	return svc
}

func logForDay(day time.Time) *mockDailyLogRepo {
	return &mockDailyLogRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.DailyLog, error) {
			return domain.DailyLog{ID: id, Day: day}, nil
		},
	}
}

func passthroughEntries() *mockLogEntryRepo {
	return &mockLogEntryRepo{
		create: func(_ context.Context, e domain.LogEntry) (domain.LogEntry, error) {
			e.ID = uuid.New()
			return e, nil
		},
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}
}

func validEntry() domain.LogEntry {
	return domain.LogEntry{
		Status:        domain.StatusDriving,
		StartHour:     8,
		DurationHours: 4,
		Remarks:       "I-80 westbound",
	}
}

func TestLogService_CreateEntry_Valid(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	got, err := svc.CreateEntry(context.Background(), uuid.New(), validEntry())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, domain.StatusDriving, got.Status)
}

func TestLogService_CreateEntry_FutureDayAllowed(t *testing.T) {
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(tomorrow), passthroughEntries())

	_, err := svc.CreateEntry(context.Background(), uuid.New(), validEntry())

	assert.NoError(t, err)
}

func TestLogService_CreateEntry_PastDayRejected(t *testing.T) {
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(yesterday), passthroughEntries())

	_, err := svc.CreateEntry(context.Background(), uuid.New(), validEntry())

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "2026-03-09")
}

func TestLogService_CreateEntry_UnknownStatus(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	entry := validEntry()
	entry.Status = "napping"

	_, err := svc.CreateEntry(context.Background(), uuid.New(), entry)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogService_CreateEntry_NonPositiveDuration(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	entry := validEntry()
	entry.DurationHours = 0

	_, err := svc.CreateEntry(context.Background(), uuid.New(), entry)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogService_CreateEntry_StartHourOutOfRange(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	entry := validEntry()
	entry.StartHour = 24

	_, err := svc.CreateEntry(context.Background(), uuid.New(), entry)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogService_CreateEntry_CrossesMidnight(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	entry := validEntry()
	entry.StartHour = 23
	entry.DurationHours = 2

	_, err := svc.CreateEntry(context.Background(), uuid.New(), entry)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "midnight")
}

func TestLogService_CreateEntry_EndsExactlyAtMidnight(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	entry := validEntry()
	entry.StartHour = 22
	entry.DurationHours = 2 // ends at 24.0, inclusive boundary is fine

	_, err := svc.CreateEntry(context.Background(), uuid.New(), entry)

	assert.NoError(t, err)
}

func TestLogService_CreateEntry_UnknownLog(t *testing.T) {
	logs := &mockDailyLogRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.DailyLog, error) {
			return domain.DailyLog{}, domain.ErrNotFound
		},
	}
	svc := newLogService(logs, passthroughEntries())

	_, err := svc.CreateEntry(context.Background(), uuid.New(), validEntry())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogService_DeleteEntry_PastDayRejected(t *testing.T) {
	lastWeek := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	entries := &mockLogEntryRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error {
			t.Fatal("delete must not reach the repo for a past day")
			return nil
		},
	}
	svc := newLogService(logForDay(lastWeek), entries)

	err := svc.DeleteEntry(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogService_DeleteEntry_OK(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newLogService(logForDay(today), passthroughEntries())

	err := svc.DeleteEntry(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
}

func TestLogService_ListEntries_EmptyIsNotNil(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := &mockLogEntryRepo{
		listByDailyLogID: func(_ context.Context, _ uuid.UUID) ([]domain.LogEntry, error) {
			return nil, nil
		},
	}
	svc := newLogService(logForDay(today), entries)

	got, err := svc.ListEntries(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLogService_ListEntries_UnknownLog(t *testing.T) {
	logs := &mockDailyLogRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.DailyLog, error) {
			return domain.DailyLog{}, domain.ErrNotFound
		},
	}
	svc := newLogService(logs, passthroughEntries())

	_, err := svc.ListEntries(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
