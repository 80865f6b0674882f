// server/internal/models/common.go
package models

// GeoPoint là toạ độ địa lý (latitude/longitude) của donor hoặc NGO.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}
