package domain

// StopType classifies a planned stop.
type StopType string

const (
	StopPickup    StopType = "pickup"
	StopDropoff   StopType = "dropoff"
	StopRestBreak StopType = "rest_break"
	StopFuel      StopType = "fuel"
)

// Stop is a mandated halt inserted into a trip plan. Stops are immutable
// once planned; insertion order is preserved for display but ordering among
// stops of the same type carries no meaning.
type Stop struct {
	Type          StopType `json:"type"`
	DurationHours float64  `json:"duration_hours"`
	Description   string   `json:"description"`
	Mandatory     bool     `json:"mandatory"`
}
