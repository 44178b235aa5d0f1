package services

import "math"

const (
	earthRadiusKm = 6371.0
	kmToMiles     = 0.621371
)

// DistanceMiles returns the great-circle distance between two coordinates
// in statute miles, rounded to 2 decimal places. The atan2 form of the
// haversine formula stays numerically stable at identical and antipodal
// points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	lat1r := lat1 * math.Pi / 180.0
	lat2r := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	miles := earthRadiusKm * c * kmToMiles
	return math.Round(miles*100) / 100
}
