package domain

// RouteSegment is one driving leg of a trip (e.g. current position → pickup).
// Distances are miles, durations are hours. Geometry is the driving path in
// travel order; an estimated segment carries only its two endpoints.
type RouteSegment struct {
	From          string       `json:"from"`
	To            string       `json:"to"`
	DistanceMiles float64      `json:"distance_miles"`
	DrivingHours  float64      `json:"driving_hours"`
	Geometry      []Coordinate `json:"geometry,omitempty"`
}
