// server/internal/models/ngo.go
package models

// VerificationStatus quyết định NGO có được login và được matching hay không.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "Verified"
	VerificationPending  VerificationStatus = "Pending"
)

type NGO struct {
	NgoID              string             `bson:"ngoID" json:"id"` // e.g., "ngo-1"
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"-"` // bcrypt hash
	Location           GeoPoint           `bson:"location" json:"location"`
	Specialties        []DonationType     `bson:"specialties" json:"specialties"`
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verificationStatus"`
}

// IsVerified báo NGO đã được duyệt hay chưa.
func (n *NGO) IsVerified() bool {
	return n.VerificationStatus == VerificationVerified
}
