package hos

import (
	"math"
	"time"
)

const (
	// cycleLimitHours is the 70-hour/8-day on-duty limit.
	cycleLimitHours = 70.0

	// cycleWindowDays is the length of the rolling window in calendar days,
	// inclusive of the as-of day.
	cycleWindowDays = 8

	// restartOffDutyHours is the consecutive off-duty total that qualifies
	// as a cycle restart.
	restartOffDutyHours = 34.0

	// scanLeadDays is how far before the nominal window start the scan
	// begins, so a restart streak straddling the window edge is still seen.
	scanLeadDays = 10

	// onDutyEpsilon: per-day on-duty totals at or below this are treated as
	// zero when tracking an off-duty streak, absorbing float noise from
	// summed entry durations.
	onDutyEpsilon = 1e-6
)

// DayTotals is one calendar day's classified duty totals, derived from the
// day's log entries: driving and on-duty-not-driving time sum into
// OnDutyHours; off-duty and sleeper-berth time sum into OffDutyHours.
// Day must be a midnight-truncated date.
type DayTotals struct {
	Day          time.Time
	OnDutyHours  float64
	OffDutyHours float64
}

// CycleSummary is the result of ComputeRollingCycle.
type CycleSummary struct {
	// UsedHours is the on-duty total inside the effective window.
	UsedHours float64 `json:"used_hours"`
	// RemainingHours is max(0, 70 − UsedHours).
	RemainingHours float64 `json:"remaining_hours"`
	// WindowStart is the effective summation start: the nominal 8-day window
	// start, or the day after a qualifying restart.
	WindowStart time.Time `json:"window_start"`
	// RestartDetected reports whether a 34-hour restart moved the window.
	RestartDetected bool `json:"restart_detected"`
	// RestartDate is the last day of the qualifying off-duty streak; the
	// restart takes effect the following day. Zero when no restart applies.
	RestartDate time.Time `json:"restart_date,omitzero"`
}

// ComputeRollingCycle computes 70-hour/8-day cycle usage as of the given
// time from a history of per-day duty totals.
//
// The scan walks day by day from ten days before the nominal window start
// through the as-of date, maintaining a streak of consecutive days with
// (near-)zero on-duty time and the off-duty hours accumulated within that
// streak. Any day on which the streak's off-duty total reaches 34 hours is
// recorded as a restart point; the scan continues so the latest qualifying
// day wins. A day with non-trivial on-duty time resets the streak.
//
// If the recorded restart day falls on or after the nominal window start,
// summation starts the day after it — on-duty hours before a qualifying
// restart do not count. Otherwise the nominal window start is used.
func ComputeRollingCycle(days []DayTotals, asOf time.Time) CycleSummary {
	asOfDay := dateOf(asOf)
	windowStart := asOfDay.AddDate(0, 0, -(cycleWindowDays - 1))
	scanStart := windowStart.AddDate(0, 0, -scanLeadDays)

	// Key by the formatted date rather than time.Time: map equality on
	// time.Time is sensitive to location and monotonic-clock differences.
	byDay := make(map[string]DayTotals, len(days))
	for _, d := range days {
		byDay[d.Day.Format(time.DateOnly)] = d
	}

	var (
		streakOff   float64
		restartDay  time.Time
		restartSeen bool
	)

	for day := scanStart; !day.After(asOfDay); day = day.AddDate(0, 0, 1) {
		totals := byDay[day.Format(time.DateOnly)]
		if totals.OnDutyHours > onDutyEpsilon {
			streakOff = 0
			continue
		}
		streakOff += totals.OffDutyHours
		if streakOff >= restartOffDutyHours {
			restartDay = day
			restartSeen = true
		}
	}

	effectiveStart := windowStart
	applied := false
	if restartSeen && !restartDay.Before(windowStart) {
		effectiveStart = restartDay.AddDate(0, 0, 1)
		applied = true
	}

	var used float64
	for day := effectiveStart; !day.After(asOfDay); day = day.AddDate(0, 0, 1) {
		used += byDay[day.Format(time.DateOnly)].OnDutyHours
	}

	summary := CycleSummary{
		UsedHours:       round2(used),
		RemainingHours:  round2(math.Max(0, cycleLimitHours-used)),
		WindowStart:     effectiveStart,
		RestartDetected: applied,
	}
	if applied {
		summary.RestartDate = restartDay
	}
	return summary
}
