package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"need-feeder-api-server/internal/models"
)

func donationAt(id string, createdAt time.Time) models.Donation {
	return models.Donation{
		DonationID:  id,
		DonorID:     "user-1",
		Type:        models.DonationFood,
		Description: "rice",
		Quantity:    "2 bags",
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
		DonorName:   "Akash Goud",
		Location:    models.GeoPoint{Lat: 17.3850, Lng: 78.4867},
	}
}

func TestMemoryDonationsOrderedByCreatedAtDescending(t *testing.T) {
	mem := NewMemoryStore()
	donations := mem.Donations()
	ctx := context.Background()

	now := time.Now()
	oldest := donationAt("don-old", now.Add(-48*time.Hour))
	middle := donationAt("don-mid", now.Add(-24*time.Hour))
	newest := donationAt("don-new", now)

	// Insert out of order; reads must re-derive the ordering.
	require.NoError(t, donations.Insert(ctx, &middle))
	require.NoError(t, donations.Insert(ctx, &newest))
	require.NoError(t, donations.Insert(ctx, &oldest))

	all, err := donations.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "don-new", all[0].DonationID)
	assert.Equal(t, "don-mid", all[1].DonationID)
	assert.Equal(t, "don-old", all[2].DonationID)
}

func TestMemorySetStatusUpdatesNgoOnlyWhenMatched(t *testing.T) {
	mem := NewMemoryStore()
	donations := mem.Donations()
	ctx := context.Background()

	d := donationAt("don-1", time.Now())
	require.NoError(t, donations.Insert(ctx, &d))

	ngoID := "ngo-1"
	updated, err := donations.SetStatus(ctx, "don-1", models.StatusMatched, &ngoID)
	require.NoError(t, err)
	require.NotNil(t, updated.NgoID)
	assert.Equal(t, "ngo-1", *updated.NgoID)
	assert.Equal(t, models.StatusMatched, updated.Status)

	// A non-Matched status change never touches ngoID, even when one is passed.
	other := "ngo-2"
	updated, err = donations.SetStatus(ctx, "don-1", models.StatusPickedUp, &other)
	require.NoError(t, err)
	require.NotNil(t, updated.NgoID)
	assert.Equal(t, "ngo-1", *updated.NgoID)
}

func TestMemorySetStatusUnknownDonation(t *testing.T) {
	mem := NewMemoryStore()
	_, err := mem.Donations().SetStatus(context.Background(), "don-missing", models.StatusMatched, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNgoViews(t *testing.T) {
	mem := NewMemoryStore()
	mem.SeedNgos([]models.NGO{
		{NgoID: "ngo-1", Name: "Hope Foundation", Email: "hope@test.com", VerificationStatus: models.VerificationVerified},
		{NgoID: "ngo-3", Name: "Goodwill Shelter", Email: "goodwill@test.com", VerificationStatus: models.VerificationPending},
	})
	ngos := mem.Ngos()
	ctx := context.Background()

	all, err := ngos.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	verified, err := ngos.Verified(ctx)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "ngo-1", verified[0].NgoID)

	_, err = ngos.GetByID(ctx, "ngo-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryByStatusAndByNgo(t *testing.T) {
	mem := NewMemoryStore()
	donations := mem.Donations()
	ctx := context.Background()

	pending := donationAt("don-1", time.Now())
	matched := donationAt("don-2", time.Now().Add(time.Minute))
	ngoID := "ngo-1"
	matched.Status = models.StatusMatched
	matched.NgoID = &ngoID
	require.NoError(t, donations.Insert(ctx, &pending))
	require.NoError(t, donations.Insert(ctx, &matched))

	byStatus, err := donations.ByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "don-1", byStatus[0].DonationID)

	byNgo, err := donations.ByNgo(ctx, "ngo-1")
	require.NoError(t, err)
	require.Len(t, byNgo, 1)
	assert.Equal(t, "don-2", byNgo[0].DonationID)
}
