// Package lifecycle holds the donation state machine and creation rules.
//
// Trạng thái chỉ đi một chiều: Pending -> Matched -> Picked Up -> Delivered.
// Matched cũng là trạng thái khởi đầu khi donor chọn NGO thủ công. Không có
// transition nào rời khỏi Delivered và không có cancel/reversal.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"need-feeder-api-server/internal/models"
)

// ErrInvalidTransition is returned by the guarded operations when the target
// status is not the direct successor of the donation's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidationError đánh dấu request tạo donation thiếu field bắt buộc.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// next maps each status to its only legal successor.
var next = map[models.DonationStatus]models.DonationStatus{
	models.StatusPending:  models.StatusMatched,
	models.StatusMatched:  models.StatusPickedUp,
	models.StatusPickedUp: models.StatusDelivered,
}

// CanTransition reports whether moving from -> to is a legal forward step.
func CanTransition(from, to models.DonationStatus) bool {
	return next[from] == to
}

// CheckTransition validates a guarded advance, rejecting skips and reversals.
// The generic store setter deliberately bypasses this check; callers that want
// the original unguarded behavior use the setter directly.
func CheckTransition(from, to models.DonationStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// AssignmentMethod chọn cách gán NGO khi tạo donation.
type AssignmentMethod string

const (
	AssignAuto   AssignmentMethod = "auto"
	AssignManual AssignmentMethod = "manual"
)

// CreateInput là dữ liệu đầu vào cho việc tạo donation mới.
type CreateInput struct {
	Donor       *models.User
	Type        models.DonationType
	Description string
	Quantity    string
	ImageURL    *string
	Method      AssignmentMethod
	NgoID       string // required when Method == AssignManual
}

// NewDonation builds a fully populated donation record.
//
// Manual assignment starts at Matched with ngoId set; auto assignment starts
// at Pending with ngoId null, whether or not any nearby NGO currently exists.
// The donor's name and location are snapshotted at creation time.
func NewDonation(in CreateInput, now time.Time) (*models.Donation, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description"}
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return nil, &ValidationError{Field: "quantity"}
	}
	if in.Method == AssignManual && in.NgoID == "" {
		return nil, &ValidationError{Field: "ngoId"}
	}

	donation := &models.Donation{
		DonationID:  fmt.Sprintf("don-%s", uuid.New().String()[:8]),
		DonorID:     in.Donor.UserID,
		Type:        in.Type,
		Description: in.Description,
		Quantity:    in.Quantity,
		Status:      models.StatusPending,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		DonorName:   in.Donor.Name,
		Location:    in.Donor.Location,
	}

	if in.Method == AssignManual {
		ngoID := in.NgoID
		donation.NgoID = &ngoID
		donation.Status = models.StatusMatched
	}

	return donation, nil
}
