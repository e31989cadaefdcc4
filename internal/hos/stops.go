// Package hos implements the Hours-of-Service compliance engine: stop
// planning, daily log generation, trip compliance checking, and the rolling
// 70-hour/8-day cycle calculation.
//
// Everything in this package is a pure function of its inputs — no clocks,
// no I/O, no persistence. Callers pass the current time explicitly where a
// computation is time-relative. The rules approximate U.S. FMCSA regulations;
// this is not a certified ELD.
package hos

import (
	"fmt"

	"trip-planner-service/internal/domain"
)

// Stop durations in hours.
const (
	pickupStopHours  = 1.0
	dropoffStopHours = 1.0
	restBreakHours   = 0.5
	fuelStopHours    = 0.5
)

// drivingHoursPerRestBreak is the block of driving that mandates one
// 30-minute rest break. Partial blocks do not trigger a break.
const drivingHoursPerRestBreak = 8.0

// milesPerFuelStop is the distance that mandates one fuel stop.
const milesPerFuelStop = 1000.0

// PlanStops returns the ordered list of mandatory stops for a trip with the
// given total driving duration and distance: one pickup and one dropoff
// (1h each), one 30-minute rest break per full 8 hours of driving, and one
// 30-minute fuel stop per full 1000 miles.
func PlanStops(drivingHours, distanceMiles float64) []domain.Stop {
	stops := []domain.Stop{
		{
			Type:          domain.StopPickup,
			DurationHours: pickupStopHours,
			Description:   "Loading/Pickup stop",
			Mandatory:     true,
		},
		{
			Type:          domain.StopDropoff,
			DurationHours: dropoffStopHours,
			Description:   "Unloading/Dropoff stop",
			Mandatory:     true,
		},
	}

	restBreaks := 0
	if drivingHours > 0 {
		restBreaks = int(drivingHours / drivingHoursPerRestBreak)
	}
	for i := 0; i < restBreaks; i++ {
		stops = append(stops, domain.Stop{
			Type:          domain.StopRestBreak,
			DurationHours: restBreakHours,
			Description:   fmt.Sprintf("30-minute rest break (required after %d hours)", int(drivingHoursPerRestBreak)*(i+1)),
			Mandatory:     true,
		})
	}

	fuelStops := 0
	if distanceMiles > 0 {
		fuelStops = int(distanceMiles / milesPerFuelStop)
	}
	for i := 0; i < fuelStops; i++ {
		stops = append(stops, domain.Stop{
			Type:          domain.StopFuel,
			DurationHours: fuelStopHours,
			Description:   "Fuel stop (every ~1000 miles)",
			Mandatory:     true,
		})
	}

	return stops
}

// TotalStopHours sums the durations of the given stops.
func TotalStopHours(stops []domain.Stop) float64 {
	var total float64
	for _, s := range stops {
		total += s.DurationHours
	}
	return total
}
