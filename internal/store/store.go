// Package store holds the persistence interfaces for users, NGOs and donations.
// Handlers and the matching engine only see these interfaces, so the backing
// storage (MongoDB in production, in-memory in tests) is swappable.
package store

import (
	"context"
	"errors"

	"need-feeder-api-server/internal/models"
)

// ErrNotFound is returned when a referenced user, NGO or donation does not
// exist in its collection.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type NGOStore interface {
	All(ctx context.Context) ([]models.NGO, error)
	// Verified trả về danh sách NGO đã duyệt, dùng cho manual selection.
	Verified(ctx context.Context) ([]models.NGO, error)
	GetByID(ctx context.Context, ngoID string) (*models.NGO, error)
	GetByEmail(ctx context.Context, email string) (*models.NGO, error)
}

type DonationStore interface {
	// All listing methods return donations ordered by createdAt descending.
	All(ctx context.Context) ([]models.Donation, error)
	ByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
	ByNgo(ctx context.Context, ngoID string) ([]models.Donation, error)
	ByStatus(ctx context.Context, status models.DonationStatus) ([]models.Donation, error)
	GetByID(ctx context.Context, donationID string) (*models.Donation, error)
	Insert(ctx context.Context, donation *models.Donation) error
	// SetStatus là generic setter giữ nguyên behavior gốc: set status không
	// kiểm tra thứ tự, và chỉ set ngoID khi status mới là Matched.
	SetStatus(ctx context.Context, donationID string, status models.DonationStatus, ngoID *string) (*models.Donation, error)
	SetImageURL(ctx context.Context, donationID, imageURL string) (*models.Donation, error)
}
