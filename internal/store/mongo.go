// server/internal/store/mongo.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"need-feeder-api-server/internal/models"
)

const (
	UsersCollection     = "users"
	NgosCollection      = "ngos"
	DonationsCollection = "donations"
)

// MongoUserStore đọc collection "users".
type MongoUserStore struct {
	DB *mongo.Database
}

func (s *MongoUserStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection(UsersCollection).FindOne(ctx, bson.M{"userID": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection(UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MongoNGOStore đọc collection "ngos".
type MongoNGOStore struct {
	DB *mongo.Database
}

func (s *MongoNGOStore) find(ctx context.Context, filter bson.M) ([]models.NGO, error) {
	cursor, err := s.DB.Collection(NgosCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ngos []models.NGO
	if err = cursor.All(ctx, &ngos); err != nil {
		return nil, err
	}
	if ngos == nil {
		ngos = []models.NGO{}
	}
	return ngos, nil
}

func (s *MongoNGOStore) All(ctx context.Context) ([]models.NGO, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoNGOStore) Verified(ctx context.Context) ([]models.NGO, error) {
	return s.find(ctx, bson.M{"verificationStatus": models.VerificationVerified})
}

func (s *MongoNGOStore) GetByID(ctx context.Context, ngoID string) (*models.NGO, error) {
	var ngo models.NGO
	err := s.DB.Collection(NgosCollection).FindOne(ctx, bson.M{"ngoID": ngoID}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ngo, nil
}

func (s *MongoNGOStore) GetByEmail(ctx context.Context, email string) (*models.NGO, error) {
	var ngo models.NGO
	err := s.DB.Collection(NgosCollection).FindOne(ctx, bson.M{"email": email}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ngo, nil
}

// MongoDonationStore đọc/ghi collection "donations". Thứ tự createdAt giảm dần
// được áp dụng lại ở mỗi lần đọc, không được duy trì trong storage.
type MongoDonationStore struct {
	DB *mongo.Database
}

func (s *MongoDonationStore) find(ctx context.Context, filter bson.M) ([]models.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection(DonationsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var donations []models.Donation
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	if donations == nil {
		donations = []models.Donation{}
	}
	return donations, nil
}

func (s *MongoDonationStore) All(ctx context.Context) ([]models.Donation, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoDonationStore) ByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	return s.find(ctx, bson.M{"donorID": donorID})
}

func (s *MongoDonationStore) ByNgo(ctx context.Context, ngoID string) ([]models.Donation, error) {
	return s.find(ctx, bson.M{"ngoID": ngoID})
}

func (s *MongoDonationStore) ByStatus(ctx context.Context, status models.DonationStatus) ([]models.Donation, error) {
	return s.find(ctx, bson.M{"status": status})
}

func (s *MongoDonationStore) GetByID(ctx context.Context, donationID string) (*models.Donation, error) {
	var donation models.Donation
	err := s.DB.Collection(DonationsCollection).FindOne(ctx, bson.M{"donationID": donationID}).Decode(&donation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (s *MongoDonationStore) Insert(ctx context.Context, donation *models.Donation) error {
	_, err := s.DB.Collection(DonationsCollection).InsertOne(ctx, donation)
	return err
}

func (s *MongoDonationStore) SetStatus(ctx context.Context, donationID string, status models.DonationStatus, ngoID *string) (*models.Donation, error) {
	update := bson.M{"status": status}
	if ngoID != nil && status == models.StatusMatched {
		update["ngoID"] = *ngoID
	}

	result, err := s.DB.Collection(DonationsCollection).UpdateOne(ctx,
		bson.M{"donationID": donationID},
		bson.M{"$set": update},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, donationID)
}

func (s *MongoDonationStore) SetImageURL(ctx context.Context, donationID, imageURL string) (*models.Donation, error) {
	result, err := s.DB.Collection(DonationsCollection).UpdateOne(ctx,
		bson.M{"donationID": donationID},
		bson.M{"$set": bson.M{"imageURL": imageURL}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, donationID)
}
