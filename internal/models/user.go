package models

// User struct matches the donor document in MongoDB
type User struct {
	UserID   string   `bson:"userID" json:"id"` // User-friendly unique ID, e.g., "user-1"
	Name     string   `bson:"name" json:"name"`
	Email    string   `bson:"email" json:"email"`
	Password string   `bson:"password" json:"-"` // bcrypt hash
	Location GeoPoint `bson:"location" json:"location"`
}
