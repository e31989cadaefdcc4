package domain

// Coordinate is a single WGS84 point. Route geometry is a sequence of these.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a geographic position with a free-text address label.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

// Valid reports whether the location carries usable coordinates.
// (0, 0) is the sentinel value geocoding returns on failure, so a location
// with both lat and lon zero is treated as unset.
func (l Location) Valid() bool {
	return l.Lat != 0 || l.Lon != 0
}

// Coordinate returns the location's position without the address label.
func (l Location) Coordinate() Coordinate {
	return Coordinate{Lat: l.Lat, Lon: l.Lon}
}
