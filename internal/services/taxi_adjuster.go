package services

import "math"

// AdjustTaxiMinutes inflates a taxi duration proportionally to weather
// severity: round(taxi + severity*taxi). A zero or negative input means
// "unknown", not "no delay", and passes through unchanged.
func AdjustTaxiMinutes(taxiMinutes, severity float64) float64 {
	if taxiMinutes <= 0 {
		return taxiMinutes
	}
	return math.Round(taxiMinutes + severity*taxiMinutes)
}
