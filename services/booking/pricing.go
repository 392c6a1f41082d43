package booking

import "safarexpress/models"

const (
	baseFare         = 100
	airportSurcharge = 200
	defaultSurcharge = 100
)

// CalculateFare returns the fare for a trip type. Placeholder pricing: a
// flat base plus a surcharge that is higher for airport runs.
func CalculateFare(tripType string) float64 {
	if tripType == models.TripAirport {
		return baseFare + airportSurcharge
	}
	return baseFare + defaultSurcharge
}
