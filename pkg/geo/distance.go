package geo

import (
	"math"

	"github.com/railplan/railplan/pkg/railway"
)

const earthRadiusKM = 6371.0

// DistanceKM calculates the great-circle distance between two coordinates
// using the Haversine formula. Missing or zero coordinates are unroutable and
// return +Inf so distance-based estimates never silently treat them as
// adjacent.
func DistanceKM(a *railway.Coordinates, b *railway.Coordinates) float64 {
	if !a.Valid() || !b.Valid() {
		return math.Inf(1)
	}

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
