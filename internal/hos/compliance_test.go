package hos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-planner-service/internal/hos"
)

func TestCheckCompliance_CyclesNeeded(t *testing.T) {
	tests := []struct {
		tripHours float64
		want      int
	}{
		{8, 1},
		{11, 1},
		{11.01, 2},
		{22, 2},
		{25, 3},
	}
	for _, tc := range tests {
		got := hos.CheckCompliance(tc.tripHours, 0)
		assert.Equal(t, tc.want, got.CyclesNeeded, "tripHours=%g", tc.tripHours)
	}
}

func TestCheckCompliance_BreakTime(t *testing.T) {
	// 3 cycles → two 10-hour inter-cycle breaks.
	got := hos.CheckCompliance(25, 0)
	assert.Equal(t, 3, got.CyclesNeeded)
	assert.Equal(t, 20.0, got.TotalBreakHours)
}

func TestCheckCompliance_RemainingHoursMayBeNegative(t *testing.T) {
	got := hos.CheckCompliance(5, 13)
	assert.Equal(t, -2.0, got.RemainingCycleHours)
}

func TestCheckCompliance_FitsInRemainingCycle(t *testing.T) {
	got := hos.CheckCompliance(8, 2)
	assert.True(t, got.Compliant)
	assert.Equal(t, 1, got.CyclesNeeded)
	assert.Equal(t, 0.0, got.TotalBreakHours)
}

// TestCheckCompliance_MultiCyclePathAlwaysCompliant documents the permissive
// predicate: any trip needing more than one cycle is reported compliant as
// long as its breaks are accounted for, even when the remaining single-cycle
// allowance is already negative. This mirrors the intended (if generous)
// behavior; see DESIGN.md.
func TestCheckCompliance_MultiCyclePathAlwaysCompliant(t *testing.T) {
	got := hos.CheckCompliance(40, 11)
	assert.True(t, got.Compliant)
	assert.Equal(t, 0.0, got.RemainingCycleHours)
	assert.Equal(t, 4, got.CyclesNeeded)
}

// The only incompliant shape: a single-cycle trip that does not fit the
// remaining allowance.
func TestCheckCompliance_SingleCycleOverAllowance(t *testing.T) {
	got := hos.CheckCompliance(10, 5) // needs 10h, 6h remain, 1 cycle
	assert.False(t, got.Compliant)
}

func TestCheckCompliance_Recommendations(t *testing.T) {
	got := hos.CheckCompliance(25, 0)
	assert.Contains(t, got.Recommendations, "Trip requires 3 driving cycle(s)")
	assert.Contains(t, got.Recommendations, "Total break time needed: 20 hours")
}
