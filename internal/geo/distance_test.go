package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"need-feeder-api-server/internal/models"
)

func TestDistanceZeroAtIdentity(t *testing.T) {
	p := models.GeoPoint{Lat: 17.3850, Lng: 78.4867}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceSymmetric(t *testing.T) {
	a := models.GeoPoint{Lat: 17.3850, Lng: 78.4867}
	b := models.GeoPoint{Lat: 17.4130, Lng: 78.4840}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistanceKnownPairs(t *testing.T) {
	donor := models.GeoPoint{Lat: 17.3850, Lng: 78.4867}

	// Hope Foundation is roughly 3.1 km from the demo donor.
	hope := models.GeoPoint{Lat: 17.4130, Lng: 78.4840}
	assert.InDelta(t, 3.1, Distance(donor, hope), 0.2)

	// Goodwill Shelter is roughly 2.8 km away.
	goodwill := models.GeoPoint{Lat: 17.3616, Lng: 78.4747}
	assert.InDelta(t, 2.8, Distance(donor, goodwill), 0.2)
}

func TestDistanceMonotonicWithSeparation(t *testing.T) {
	origin := models.GeoPoint{Lat: 0, Lng: 0}
	near := models.GeoPoint{Lat: 0, Lng: 1}
	far := models.GeoPoint{Lat: 0, Lng: 2}

	assert.Less(t, Distance(origin, near), Distance(origin, far))
}

func TestDistanceNeverNegative(t *testing.T) {
	a := models.GeoPoint{Lat: -89.9, Lng: -179.9}
	b := models.GeoPoint{Lat: 89.9, Lng: 179.9}
	assert.GreaterOrEqual(t, Distance(a, b), 0.0)
}
