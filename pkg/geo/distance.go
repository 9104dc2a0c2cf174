package geo

import "math"

// earthRadiusKm matches the constant used by the availability search.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	deltaPhi := radians(lat2 - lat1)
	deltaLambda := radians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RoundKm rounds a raw distance to one decimal, the precision the search
// results carry on the wire.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// DisplayKm rounds a distance up to the next whole kilometer. Every display
// path uses the ceiling so an agent is never shown closer than they are.
func DisplayKm(km float64) int {
	return int(math.Ceil(km))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
