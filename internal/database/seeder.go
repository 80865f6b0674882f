// server/internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/models"
	"need-feeder-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func strPtr(s string) *string {
	return &s
}

func demoUsers(passwordHash string) []interface{} {
	return []interface{}{
		models.User{UserID: "user-1", Name: "Akash Goud", Email: "akash@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.3850, Lng: 78.4867}},
		models.User{UserID: "user-2", Name: "Vinesh Goud", Email: "vinesh@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.4375, Lng: 78.4483}},
	}
}

func demoNgos(passwordHash string) []interface{} {
	return []interface{}{
		models.NGO{NgoID: "ngo-1", Name: "Hope Foundation", Email: "hope@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.4130, Lng: 78.4840}, Specialties: []models.DonationType{models.DonationFood, models.DonationClothes}, VerificationStatus: models.VerificationVerified},
		models.NGO{NgoID: "ngo-2", Name: "Charity Connect", Email: "charity@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.4500, Lng: 78.4200}, Specialties: []models.DonationType{models.DonationEssentials, models.DonationMoney}, VerificationStatus: models.VerificationVerified},
		models.NGO{NgoID: "ngo-3", Name: "Goodwill Shelter", Email: "goodwill@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.3616, Lng: 78.4747}, Specialties: []models.DonationType{models.DonationFood, models.DonationEssentials}, VerificationStatus: models.VerificationPending},
		models.NGO{NgoID: "ngo-4", Name: "Helping Hands", Email: "helping@test.com", Password: passwordHash, Location: models.GeoPoint{Lat: 17.3845, Lng: 78.4870}, Specialties: []models.DonationType{models.DonationClothes, models.DonationEssentials}, VerificationStatus: models.VerificationVerified},
	}
}

func demoDonations() []interface{} {
	now := time.Now()
	return []interface{}{
		models.Donation{
			DonationID: "don-1", DonorID: "user-1", NgoID: strPtr("ngo-1"),
			Type: models.DonationFood, Description: "10kg Rice and Dal", Quantity: "2 bags",
			Status: models.StatusDelivered, ImageURL: strPtr("https://picsum.photos/seed/food1/400/300"),
			CreatedAt: now.Add(-3 * 24 * time.Hour), DonorName: "Akash Goud",
			Location: models.GeoPoint{Lat: 17.3850, Lng: 78.4867},
		},
		models.Donation{
			DonationID: "don-2", DonorID: "user-2", NgoID: nil,
			Type: models.DonationClothes, Description: "Warm blankets and sweaters for winter.", Quantity: "5 boxes",
			Status: models.StatusPending, ImageURL: strPtr("https://picsum.photos/seed/clothes1/400/300"),
			CreatedAt: now, DonorName: "Vinesh Goud",
			Location: models.GeoPoint{Lat: 17.4375, Lng: 78.4483},
		},
		models.Donation{
			DonationID: "don-3", DonorID: "user-1", NgoID: strPtr("ngo-4"),
			Type: models.DonationEssentials, Description: "Sanitary pads and soaps.", Quantity: "1 large box",
			Status: models.StatusPickedUp, ImageURL: strPtr("https://picsum.photos/seed/essentials1/400/300"),
			CreatedAt: now.Add(-24 * time.Hour), DonorName: "Akash Goud",
			Location: models.GeoPoint{Lat: 17.3850, Lng: 78.4867},
		},
	}
}

// SeedDemoData đảm bảo ba collection có dữ liệu demo. Collection nào rỗng
// thì được seed; collection nào đọc ra không decode được (hỏng dữ liệu) thì
// bị drop và seed lại thay vì làm hỏng cả phiên làm việc.
func SeedDemoData(db *mongo.Database) error {
	passwordHash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	if err := seedCollection(db, store.UsersCollection, demoUsers(passwordHash), func(ctx context.Context, coll *mongo.Collection) error {
		var users []models.User
		cursor, err := coll.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &users)
	}); err != nil {
		return err
	}

	if err := seedCollection(db, store.NgosCollection, demoNgos(passwordHash), func(ctx context.Context, coll *mongo.Collection) error {
		var ngos []models.NGO
		cursor, err := coll.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &ngos)
	}); err != nil {
		return err
	}

	return seedCollection(db, store.DonationsCollection, demoDonations(), func(ctx context.Context, coll *mongo.Collection) error {
		var donations []models.Donation
		cursor, err := coll.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &donations)
	})
}

func seedCollection(db *mongo.Database, name string, seed []interface{}, decodeAll func(context.Context, *mongo.Collection) error) error {
	ctx := context.Background()
	coll := db.Collection(name)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}

	if count > 0 {
		// Kiểm tra collection còn đọc được không
		if err := decodeAll(ctx, coll); err == nil {
			log.Printf("Collection %q already seeded. Seeding skipped.", name)
			return nil
		}
		// Dữ liệu hỏng: bỏ và seed lại từ đầu
		log.Printf("Collection %q is unreadable. Dropping and reseeding...", name)
		if err := coll.Drop(ctx); err != nil {
			return err
		}
	} else {
		log.Printf("Collection %q is empty. Seeding...", name)
	}

	_, err = coll.InsertMany(ctx, seed)
	if err != nil {
		return err
	}

	log.Printf("Collection %q seeded successfully.", name)
	return nil
}
