// server/internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"

	"need-feeder-api-server/internal/models"
)

// MemoryStore giữ ba collection trong bộ nhớ, dùng cho test và chạy demo
// không cần MongoDB. Một instance phục vụ cả ba interface.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	ngos      []models.NGO
	donations []models.Donation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SeedUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
}

func (s *MemoryStore) SeedNgos(ngos []models.NGO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ngos = append(s.ngos, ngos...)
}

func (s *MemoryStore) SeedDonations(donations []models.Donation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations = append(s.donations, donations...)
}

// --- UserStore ---

func (s *MemoryStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// --- NGOStore ---

// Ngos exposes the directory views with their own method names so one
// MemoryStore can satisfy both UserStore and NGOStore.
type memoryNGOStore struct {
	parent *MemoryStore
}

func (s *MemoryStore) Ngos() NGOStore {
	return &memoryNGOStore{parent: s}
}

func (n *memoryNGOStore) All(ctx context.Context) ([]models.NGO, error) {
	n.parent.mu.RLock()
	defer n.parent.mu.RUnlock()
	out := make([]models.NGO, len(n.parent.ngos))
	copy(out, n.parent.ngos)
	return out, nil
}

func (n *memoryNGOStore) Verified(ctx context.Context) ([]models.NGO, error) {
	n.parent.mu.RLock()
	defer n.parent.mu.RUnlock()
	out := []models.NGO{}
	for _, ngo := range n.parent.ngos {
		if ngo.IsVerified() {
			out = append(out, ngo)
		}
	}
	return out, nil
}

func (n *memoryNGOStore) GetByID(ctx context.Context, ngoID string) (*models.NGO, error) {
	n.parent.mu.RLock()
	defer n.parent.mu.RUnlock()
	for _, ngo := range n.parent.ngos {
		if ngo.NgoID == ngoID {
			found := ngo
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (n *memoryNGOStore) GetByEmail(ctx context.Context, email string) (*models.NGO, error) {
	n.parent.mu.RLock()
	defer n.parent.mu.RUnlock()
	for _, ngo := range n.parent.ngos {
		if ngo.Email == email {
			found := ngo
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// --- DonationStore ---

type memoryDonationStore struct {
	parent *MemoryStore
}

func (s *MemoryStore) Donations() DonationStore {
	return &memoryDonationStore{parent: s}
}

// sortedCopy trả về bản copy sắp theo createdAt giảm dần; thứ tự được tính
// lại ở mỗi lần đọc giống behavior gốc.
func (d *memoryDonationStore) sortedCopy(keep func(models.Donation) bool) []models.Donation {
	out := []models.Donation{}
	for _, don := range d.parent.donations {
		if keep == nil || keep(don) {
			out = append(out, don)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (d *memoryDonationStore) All(ctx context.Context) ([]models.Donation, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	return d.sortedCopy(nil), nil
}

func (d *memoryDonationStore) ByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	return d.sortedCopy(func(don models.Donation) bool {
		return don.DonorID == donorID
	}), nil
}

func (d *memoryDonationStore) ByNgo(ctx context.Context, ngoID string) ([]models.Donation, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	return d.sortedCopy(func(don models.Donation) bool {
		return don.NgoID != nil && *don.NgoID == ngoID
	}), nil
}

func (d *memoryDonationStore) ByStatus(ctx context.Context, status models.DonationStatus) ([]models.Donation, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	return d.sortedCopy(func(don models.Donation) bool {
		return don.Status == status
	}), nil
}

func (d *memoryDonationStore) GetByID(ctx context.Context, donationID string) (*models.Donation, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	for _, don := range d.parent.donations {
		if don.DonationID == donationID {
			found := don
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (d *memoryDonationStore) Insert(ctx context.Context, donation *models.Donation) error {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	d.parent.donations = append(d.parent.donations, *donation)
	return nil
}

func (d *memoryDonationStore) SetStatus(ctx context.Context, donationID string, status models.DonationStatus, ngoID *string) (*models.Donation, error) {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	for i := range d.parent.donations {
		if d.parent.donations[i].DonationID == donationID {
			d.parent.donations[i].Status = status
			if ngoID != nil && status == models.StatusMatched {
				id := *ngoID
				d.parent.donations[i].NgoID = &id
			}
			updated := d.parent.donations[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (d *memoryDonationStore) SetImageURL(ctx context.Context, donationID, imageURL string) (*models.Donation, error) {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	for i := range d.parent.donations {
		if d.parent.donations[i].DonationID == donationID {
			url := imageURL
			d.parent.donations[i].ImageURL = &url
			updated := d.parent.donations[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}
