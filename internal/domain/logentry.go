package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single duty-status interval within a daily log.
//
// StartHour is the start of the interval in hours from midnight (13.5 =
// 1:30 PM) and must lie in [0, 24). DurationHours must be positive and the
// interval must not cross midnight: StartHour + DurationHours ≤ 24. An
// activity spanning midnight is recorded as two entries, one per day.
type LogEntry struct {
	ID            uuid.UUID  `json:"id"`
	DailyLogID    uuid.UUID  `json:"daily_log_id"`
	Status        DutyStatus `json:"status"`
	StartHour     float64    `json:"start_hour"`
	DurationHours float64    `json:"duration_hours"`
	Remarks       string     `json:"remarks,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
