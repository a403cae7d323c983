package hotels

import "math"

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// HaversineKm returns the great-circle distance between two WGS84 points in
// kilometers. Inputs are assumed to be valid latitudes/longitudes; values out
// of range are the caller's problem, nothing is clamped.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
