package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyLog is one calendar day of a trip's driver log. At most one daily log
// exists per (trip, day) pair.
//
// DrivingHours and OffDutyHours are a derived rollup of the log's entries.
// They are recomputed from the current entries whenever an entry is added or
// removed, and are never an independent source of truth — the entries are
// authoritative.
type DailyLog struct {
	ID           uuid.UUID  `json:"id"`
	TripID       uuid.UUID  `json:"trip_id"`
	Day          time.Time  `json:"day"`
	DrivingHours float64    `json:"driving_hours"`
	OffDutyHours float64    `json:"off_duty_hours"`
	Status       DutyStatus `json:"status"`
	Remarks      string     `json:"remarks,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// Entries is populated only by reads that explicitly join entries
	// (trip detail, rolling cycle computation). Elsewhere it is nil.
	Entries []LogEntry `json:"entries,omitempty"`
}
