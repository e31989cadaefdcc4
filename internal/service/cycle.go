package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/repo"
)

// historyLeadDays is how much log history is loaded ahead of the 8-day
// window: 7 days back to the window start plus hos's 10-day restart scan
// lead.
const historyLeadDays = 17

// CycleService computes rolling 70-hour/8-day cycle usage from a trip's
// recorded log entries.
type CycleService struct {
	trips   repo.TripRepo
	entries repo.LogEntryRepo
}

// NewCycleService constructs a CycleService.
func NewCycleService(trips repo.TripRepo, entries repo.LogEntryRepo) *CycleService {
	return &CycleService{trips: trips, entries: entries}
}

// Rolling returns the trip's cycle usage as of the given time. Per-day duty
// totals are classified from the raw log entries, never from the daily
// logs' rollup fields. Unknown trips yield domain.ErrNotFound.
func (s *CycleService) Rolling(ctx context.Context, tripID uuid.UUID, asOf time.Time) (hos.CycleSummary, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return hos.CycleSummary{}, fmt.Errorf("service.CycleService.Rolling: %w", err)
	}

	// The fetch range must cover the same calendar date the cycle window
	// anchors on, which is the date in asOf's own location. Daily log days
	// are stored as bare dates, so the bounds use UTC midnights.
	y, m, d := asOf.Date()
	asOfDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	from := asOfDay.AddDate(0, 0, -historyLeadDays)

	logs, err := s.entries.ListLogsWithEntries(ctx, tripID, from, asOfDay)
	if err != nil {
		return hos.CycleSummary{}, fmt.Errorf("service.CycleService.Rolling: %w", err)
	}

	return hos.ComputeRollingCycle(classifyDays(logs), asOf), nil
}

// classifyDays folds each daily log's entries into per-day on-duty and
// off-duty totals.
func classifyDays(logs []domain.DailyLog) []hos.DayTotals {
	totals := make([]hos.DayTotals, 0, len(logs))
	for _, log := range logs {
		dt := hos.DayTotals{Day: log.Day}
		for _, e := range log.Entries {
			if e.Status.OnDuty() {
				dt.OnDutyHours += e.DurationHours
			} else {
				dt.OffDutyHours += e.DurationHours
			}
		}
		totals = append(totals, dt)
	}
	return totals
}
