// server/internal/models/donation.go
package models

import "time"

type DonationType string

const (
	DonationFood       DonationType = "Food"
	DonationClothes    DonationType = "Clothes"
	DonationMoney      DonationType = "Money"
	DonationEssentials DonationType = "Essentials"
)

// DonationStatus là trạng thái của donation, chỉ đi theo một chiều:
// Pending -> Matched -> Picked Up -> Delivered
type DonationStatus string

const (
	StatusPending   DonationStatus = "Pending"
	StatusMatched   DonationStatus = "Matched"
	StatusPickedUp  DonationStatus = "Picked Up"
	StatusDelivered DonationStatus = "Delivered"
)

type Donation struct {
	DonationID  string         `bson:"donationID" json:"id"` // e.g., "don-1a2b3c4d"
	DonorID     string         `bson:"donorID" json:"donorId"`
	NgoID       *string        `bson:"ngoID" json:"ngoId"` // null until the donation is matched
	Type        DonationType   `bson:"type" json:"type"`
	Description string         `bson:"description" json:"description"`
	Quantity    string         `bson:"quantity" json:"quantity"`
	Status      DonationStatus `bson:"status" json:"status"`
	ImageURL    *string        `bson:"imageURL" json:"imageUrl"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	// Snapshot của donor tại thời điểm tạo donation.
	DonorName string   `bson:"donorName" json:"donorName"`
	Location  GeoPoint `bson:"location" json:"location"`
}
