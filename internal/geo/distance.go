// Package geo provides the great-circle distance used for NGO radius matching.
package geo

import (
	"math"

	"need-feeder-api-server/internal/models"
)

// EarthRadiusKm là bán kính trái đất (km) dùng cho công thức haversine.
const EarthRadiusKm = 6371.0

// Distance returns the haversine distance between two points in kilometers.
// It is symmetric and returns 0 when both points are identical.
func Distance(a, b models.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
