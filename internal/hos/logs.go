package hos

import (
	"fmt"
	"math"
	"time"

	"trip-planner-service/internal/domain"
)

// maxDailyDrivingHours is the federal 11-hour daily driving limit. It also
// bounds the per-cycle allowance in this model.
const maxDailyDrivingHours = 11.0

// offDutyHoursPerDay is the full rest period scheduled after every driving
// day, and the length of the forced break inserted when the cycle is
// exhausted.
const offDutyHoursPerDay = 10.0

// DayLog is one simulated day produced by GenerateDailyLogs. It is the
// pre-persistence shape of a domain.DailyLog: the service layer attaches
// trip ownership before storing it.
type DayLog struct {
	Day          time.Time
	DrivingHours float64
	OffDutyHours float64
	Status       domain.DutyStatus
	Remarks      string
}

// GenerateDailyLogs partitions a trip's total duration into per-day logs
// obeying the 11-hour daily driving limit and the 10-hour off-duty rule.
//
// The algorithm is a day-by-day simulation, not a closed form. Each
// iteration is one simulated day:
//
//   - If the remaining cycle allowance is exhausted (≤ 0), a forced 10-hour
//     off-duty day is emitted, the allowance resets to 11 hours, and the
//     clock advances 10 hours. Such a day consumes no trip time.
//   - Otherwise the day drives min(11, remaining cycle, remaining trip)
//     hours followed by a fixed 10-hour off-duty block.
//
// The loop ends once remaining trip time reaches zero; a trip with
// tripHours ≤ 0 yields no logs. driverName is accepted for interface parity
// with the planning request but does not affect the output.
func GenerateDailyLogs(start time.Time, tripHours, cycleUsedHours float64, driverName string) []DayLog {
	_ = driverName

	var logs []DayLog
	current := start
	remainingTrip := tripHours
	remainingCycle := maxDailyDrivingHours - cycleUsedHours

	dayCount := 0

	for remainingTrip > 0 {
		dayCount++
		day := dateOf(current)

		if remainingCycle <= 0 {
			// Forced 10-hour break before a new cycle; trip time is untouched.
			logs = append(logs, DayLog{
				Day:          day,
				DrivingHours: 0,
				OffDutyHours: offDutyHoursPerDay,
				Status:       domain.StatusOffDuty,
				Remarks:      "10-hour break - new cycle starts",
			})
			remainingCycle = maxDailyDrivingHours
			current = current.Add(time.Duration(offDutyHoursPerDay * float64(time.Hour)))
			continue
		}

		driving := math.Min(maxDailyDrivingHours, math.Min(remainingCycle, remainingTrip))
		offDuty := offDutyHoursPerDay

		status := domain.StatusOffDuty
		if driving > 0 {
			status = domain.StatusDriving
		}

		logs = append(logs, DayLog{
			Day:          day,
			DrivingHours: round2(driving),
			OffDutyHours: round2(offDuty),
			Status:       status,
			Remarks:      fmt.Sprintf("Day %d - %gh driving, %gh off-duty", dayCount, round2(driving), offDuty),
		})

		remainingTrip -= driving
		remainingCycle -= driving
		current = current.Add(time.Duration((driving + offDuty) * float64(time.Hour)))
	}

	return logs
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// round2 rounds to two decimal places, matching how hours are stored.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
