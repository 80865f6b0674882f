// Package matching implements the proximity filter that pairs donors with
// verified NGOs.
package matching

import (
	"context"

	"need-feeder-api-server/internal/geo"
	"need-feeder-api-server/internal/models"
	"need-feeder-api-server/internal/store"
)

// DefaultRadiusKm là bán kính mặc định khi client không truyền radius.
const DefaultRadiusKm = 5.0

type Engine struct {
	Ngos store.NGOStore
}

// FindNearbyNgos returns every Verified NGO within radiusKm of donorLocation.
// The boundary is inclusive and directory iteration order is preserved; no
// distance ranking is applied. An empty directory or zero matches yields an
// empty slice, never an error.
func (e *Engine) FindNearbyNgos(ctx context.Context, donorLocation models.GeoPoint, radiusKm float64) ([]models.NGO, error) {
	ngos, err := e.Ngos.All(ctx)
	if err != nil {
		return nil, err
	}
	return Nearby(ngos, donorLocation, radiusKm), nil
}

// Nearby là phần lọc thuần: chỉ giữ NGO Verified trong bán kính cho trước.
func Nearby(ngos []models.NGO, donorLocation models.GeoPoint, radiusKm float64) []models.NGO {
	nearby := []models.NGO{}
	for _, ngo := range ngos {
		if !ngo.IsVerified() {
			continue
		}
		if geo.Distance(donorLocation, ngo.Location) <= radiusKm {
			nearby = append(nearby, ngo)
		}
	}
	return nearby
}
