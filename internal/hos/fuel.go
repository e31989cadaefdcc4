package hos

// Typical heavy-truck fuel economy and diesel price used for the estimate.
const (
	truckMPG          = 6.5
	dieselPricePerGal = 3.50
)

// Fuel is a rough fuel requirement estimate for a trip.
type Fuel struct {
	GallonsNeeded float64 `json:"gallons_needed"`
	MPG           float64 `json:"mpg"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// FuelRequirement estimates fuel volume and cost for the given distance.
func FuelRequirement(distanceMiles float64) Fuel {
	gallons := distanceMiles / truckMPG
	return Fuel{
		GallonsNeeded: round2(gallons),
		MPG:           truckMPG,
		EstimatedCost: round2(gallons * dieselPricePerGal),
	}
}
