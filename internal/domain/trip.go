// Package domain contains the core data types for the trip planner service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (hos, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatusPlanned is the status assigned to every trip at creation.
// There is no further lifecycle automation; status is informational.
const TripStatusPlanned = "planned"

// Trip represents a single planned trucking trip from pickup to dropoff.
// A trip is the top-level aggregate; daily logs belong to a trip.
//
// CycleUsedHours is a snapshot of the driver's cycle usage taken when the
// trip was planned. It is never recomputed — the rolling cycle endpoint is
// the derived, up-to-date view.
type Trip struct {
	ID              uuid.UUID `json:"id"`
	DriverName      string    `json:"driver_name"`
	PickupLocation  Location  `json:"pickup_location"`
	DropoffLocation Location  `json:"dropoff_location"`
	StartTime       time.Time `json:"start_time"`
	CycleUsedHours  float64   `json:"cycle_used_hours"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
