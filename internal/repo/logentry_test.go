package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/repo"
)

// seedTripWithLog creates a trip and one daily log, returning both.
func seedTripWithLog(t *testing.T, tripRepo repo.TripRepo, logRepo repo.DailyLogRepo) (domain.Trip, domain.DailyLog) {
	t.Helper()
	ctx := context.Background()

	trip, err := tripRepo.Create(ctx, tripFixture())
	require.NoError(t, err)

	logs, err := logRepo.CreateBatch(ctx, []domain.DailyLog{{
		TripID:  trip.ID,
		Day:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusDriving,
		Remarks: "Day 1",
	}})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	return trip, logs[0]
}

func TestDailyLogRepo_CreateBatch_DuplicateDayConflict(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx)
	ctx := context.Background()

	trip, _ := seedTripWithLog(t, tripRepo, logRepo)

	_, err := logRepo.CreateBatch(ctx, []domain.DailyLog{{
		TripID: trip.ID,
		Day:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusOffDuty,
	}})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDailyLogRepo_ListByTripID_OrderedByDay(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx)
	ctx := context.Background()

	trip, err := tripRepo.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = logRepo.CreateBatch(ctx, []domain.DailyLog{
		{TripID: trip.ID, Day: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Status: domain.StatusDriving},
		{TripID: trip.ID, Day: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusDriving},
	})
	require.NoError(t, err)

	logs, err := logRepo.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].Day.Before(logs[1].Day))
}

// TestLogEntryRepo_Create_RecomputesRollup verifies the derived aggregates
// on the parent log track its entries after every mutation.
func TestLogEntryRepo_Create_RecomputesRollup(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo, entryRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx), repo.NewLogEntryRepo(tx)
	ctx := context.Background()

	_, log := seedTripWithLog(t, tripRepo, logRepo)

	_, err := entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusDriving, StartHour: 8, DurationHours: 5,
	})
	require.NoError(t, err)
	_, err = entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusDriving, StartHour: 14, DurationHours: 3,
	})
	require.NoError(t, err)
	_, err = entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusSleeperBerth, StartHour: 17, DurationHours: 7,
	})
	require.NoError(t, err)

	got, err := logRepo.GetByID(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.DrivingHours)
	assert.Equal(t, 7.0, got.OffDutyHours)
}

func TestLogEntryRepo_Delete_RecomputesRollup(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo, entryRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx), repo.NewLogEntryRepo(tx)
	ctx := context.Background()

	_, log := seedTripWithLog(t, tripRepo, logRepo)

	kept, err := entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusDriving, StartHour: 8, DurationHours: 5,
	})
	require.NoError(t, err)
	dropped, err := entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusDriving, StartHour: 14, DurationHours: 3,
	})
	require.NoError(t, err)

	require.NoError(t, entryRepo.Delete(ctx, log.ID, dropped.ID))

	got, err := logRepo.GetByID(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.DrivingHours)

	entries, err := entryRepo.ListByDailyLogID(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].ID)
}

func TestLogEntryRepo_Delete_NotFound(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo, entryRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx), repo.NewLogEntryRepo(tx)

	_, log := seedTripWithLog(t, tripRepo, logRepo)

	err := entryRepo.Delete(context.Background(), log.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogEntryRepo_ListLogsWithEntries(t *testing.T) {
	tx := newTestTx(t)
	tripRepo, logRepo, entryRepo := repo.NewTripRepo(tx), repo.NewDailyLogRepo(tx), repo.NewLogEntryRepo(tx)
	ctx := context.Background()

	trip, log := seedTripWithLog(t, tripRepo, logRepo)

	_, err := entryRepo.Create(ctx, domain.LogEntry{
		DailyLogID: log.ID, Status: domain.StatusDriving, StartHour: 8, DurationHours: 6,
	})
	require.NoError(t, err)

	from := time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	logs, err := entryRepo.ListLogsWithEntries(ctx, trip.ID, from, to)

	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Entries, 1)
	assert.Equal(t, domain.StatusDriving, logs[0].Entries[0].Status)

	// A range that misses the log's day returns nothing.
	logs, err = entryRepo.ListLogsWithEntries(ctx, trip.ID,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, logs)
}
