package routing

import (
	"math"

	"trip-planner-service/internal/domain"
)

const earthRadiusMiles = 3958.8

// DefaultAvgSpeedMPH is the cruising speed assumed when estimating duration
// without the routing service.
const DefaultAvgSpeedMPH = 55.0

// EstimateRoute approximates a driving route as the great-circle distance
// between the two points at the given average speed. It is the fallback used
// when the route provider is unavailable; the geometry is just the two
// endpoints. avgSpeedMPH ≤ 0 falls back to DefaultAvgSpeedMPH.
func EstimateRoute(origin, dest domain.Location, avgSpeedMPH float64) domain.RouteSegment {
	if avgSpeedMPH <= 0 {
		avgSpeedMPH = DefaultAvgSpeedMPH
	}

	miles := haversineMiles(origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	return domain.RouteSegment{
		From:          origin.Address,
		To:            dest.Address,
		DistanceMiles: round2(miles),
		DrivingHours:  round2(miles / avgSpeedMPH),
		Geometry: []domain.Coordinate{
			origin.Coordinate(),
			dest.Coordinate(),
		},
	}
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	lat1 *= degToRad
	lon1 *= degToRad
	lat2 *= degToRad
	lon2 *= degToRad
	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
