// server/internal/api/handlers/donation_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"need-feeder-api-server/internal/gemini"
	"need-feeder-api-server/internal/lifecycle"
	"need-feeder-api-server/internal/models"
	"need-feeder-api-server/internal/s3"
	"need-feeder-api-server/internal/socket"
	"need-feeder-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UrgencySuggester là collaborator xếp hạng donation khẩn cấp (Gemini).
type UrgencySuggester interface {
	Suggest(ctx context.Context, pending []models.Donation) []gemini.Suggestion
}

type DonationHandler struct {
	Donations store.DonationStore
	Users     store.UserStore
	Ngos      store.NGOStore
	Hub       *socket.Hub
	Uploader  *s3.Uploader
	Suggester UrgencySuggester
}

// --- Structs cho Request Body ---

type CreateDonationRequest struct {
	Type             models.DonationType        `json:"type" binding:"required"`
	Description      string                     `json:"description"`
	Quantity         string                     `json:"quantity"`
	ImageURL         *string                    `json:"imageUrl"`
	AssignmentMethod lifecycle.AssignmentMethod `json:"assignmentMethod" binding:"required,oneof=auto manual"`
	NgoID            string                     `json:"ngoId"`
}

type UpdateStatusRequest struct {
	Status models.DonationStatus `json:"status" binding:"required"`
	NgoID  *string               `json:"ngoId"`
}

var validStatuses = map[models.DonationStatus]bool{
	models.StatusPending:   true,
	models.StatusMatched:   true,
	models.StatusPickedUp:  true,
	models.StatusDelivered: true,
}

var validTypes = map[models.DonationType]bool{
	models.DonationFood:       true,
	models.DonationClothes:    true,
	models.DonationMoney:      true,
	models.DonationEssentials: true,
}

// --- Handlers ---

// CreateDonation tạo donation mới cho donor đang đăng nhập.
// auto: donation vào hàng đợi Pending, NGO nào đủ điều kiện sẽ nhận sau.
// manual: gán thẳng cho NGO được chọn, trạng thái Matched ngay khi tạo.
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	donorID := c.GetString("account_id")

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown donation type: %s", req.Type)})
		return
	}

	donor, err := h.Users.GetByID(c.Request.Context(), donorID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donor"})
		}
		return
	}

	// Với manual assignment, NGO phải tồn tại và đã Verified.
	if req.AssignmentMethod == lifecycle.AssignManual && req.NgoID != "" {
		ngo, err := h.Ngos.GetByID(c.Request.Context(), req.NgoID)
		if err != nil {
			if err == store.ErrNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Selected NGO does not exist: %s", req.NgoID)})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check selected NGO"})
			}
			return
		}
		if !ngo.IsVerified() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selected NGO is pending verification"})
			return
		}
	}

	donation, err := lifecycle.NewDonation(lifecycle.CreateInput{
		Donor:       donor,
		Type:        req.Type,
		Description: req.Description,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		Method:      req.AssignmentMethod,
		NgoID:       req.NgoID,
	}, time.Now())
	if err != nil {
		var verr *lifecycle.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build donation"})
		return
	}

	if err := h.Donations.Insert(c.Request.Context(), donation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	h.notify(donation, "donation_created")

	c.JSON(http.StatusCreated, donation)
}

// GetAllDonations lấy toàn bộ donation, sắp theo createdAt giảm dần.
func (h *DonationHandler) GetAllDonations(c *gin.Context) {
	donations, err := h.Donations.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetMyDonations lấy donation của donor đang đăng nhập.
func (h *DonationHandler) GetMyDonations(c *gin.Context) {
	donorID := c.GetString("account_id")

	donations, err := h.Donations.ByDonor(c.Request.Context(), donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetAvailableDonations lấy các donation Pending chờ NGO nhận.
func (h *DonationHandler) GetAvailableDonations(c *gin.Context) {
	donations, err := h.Donations.ByStatus(c.Request.Context(), models.StatusPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetMyAcceptedDonations lấy các donation mà NGO đang đăng nhập đã nhận.
func (h *DonationHandler) GetMyAcceptedDonations(c *gin.Context) {
	ngoID := c.GetString("account_id")

	donations, err := h.Donations.ByNgo(c.Request.Context(), ngoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// GetDonationByID lấy chi tiết một donation.
func (h *DonationHandler) GetDonationByID(c *gin.Context) {
	donationID := c.Param("id")

	donation, err := h.Donations.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	c.JSON(http.StatusOK, donation)
}

// AcceptDonation cho NGO nhận một donation đang Pending. Đây là transition
// duy nhất vừa set ngoID vừa đổi status (Pending -> Matched).
func (h *DonationHandler) AcceptDonation(c *gin.Context) {
	donationID := c.Param("id")
	ngoID := c.GetString("account_id")

	donation, err := h.Donations.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	if err := lifecycle.CheckTransition(donation.Status, models.StatusMatched); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Donation is not pending (current status: %s)", donation.Status)})
		return
	}

	updated, err := h.Donations.SetStatus(c.Request.Context(), donationID, models.StatusMatched, &ngoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept donation"})
		return
	}

	h.notify(updated, "donation_matched")

	c.JSON(http.StatusOK, updated)
}

// ConfirmPickup chuyển donation từ Matched sang Picked Up (có kiểm tra).
func (h *DonationHandler) ConfirmPickup(c *gin.Context) {
	h.advance(c, models.StatusPickedUp)
}

// ConfirmDelivery chuyển donation từ Picked Up sang Delivered (có kiểm tra).
func (h *DonationHandler) ConfirmDelivery(c *gin.Context) {
	h.advance(c, models.StatusDelivered)
}

func (h *DonationHandler) advance(c *gin.Context, target models.DonationStatus) {
	donationID := c.Param("id")

	donation, err := h.Donations.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	if err := lifecycle.CheckTransition(donation.Status, target); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Cannot move donation from %s to %s", donation.Status, target)})
		return
	}

	updated, err := h.Donations.SetStatus(c.Request.Context(), donationID, target, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation status"})
		return
	}

	h.notify(updated, "donation_status_updated")

	c.JSON(http.StatusOK, updated)
}

// UpdateStatus là generic setter giữ nguyên behavior gốc: set thẳng status
// không kiểm tra thứ tự transition. Các endpoint accept/pickup/deliver ở trên
// là đường đi có kiểm tra.
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	donationID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status: %s", req.Status)})
		return
	}

	updated, err := h.Donations.SetStatus(c.Request.Context(), donationID, req.Status, req.NgoID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation status"})
		}
		return
	}

	h.notify(updated, "donation_status_updated")

	c.JSON(http.StatusOK, updated)
}

// GetSuggestions trả về các donation Pending khẩn cấp nhất theo Gemini.
// Collaborator lỗi hay không cấu hình thì trả về danh sách rỗng, không chặn donor.
func (h *DonationHandler) GetSuggestions(c *gin.Context) {
	pending, err := h.Donations.ByStatus(c.Request.Context(), models.StatusPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query pending donations"})
		return
	}

	suggestions := []gemini.Suggestion{}
	if h.Suggester != nil {
		suggestions = h.Suggester.Suggest(c.Request.Context(), pending)
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// UploadImage nhận ảnh minh hoạ donation (multipart) và đưa lên S3.
func (h *DonationHandler) UploadImage(c *gin.Context) {
	donationID := c.Param("id")
	donorID := c.GetString("account_id")

	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	donation, err := h.Donations.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	if donation.DonorID != donorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this donation"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("donations/%s/%s%s", donationID, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image", "details": err.Error()})
		return
	}

	updated, err := h.Donations.SetImageURL(c.Request.Context(), donationID, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// notify đẩy sự kiện donation qua WebSocket: gửi riêng cho donor sở hữu và
// broadcast cho các dashboard đang mở.
func (h *DonationHandler) notify(donation *models.Donation, event string) {
	if h.Hub == nil {
		return
	}

	notification := map[string]interface{}{
		"event":    event,
		"donation": donation,
	}
	notificationJSON, _ := json.Marshal(notification)

	if event == "donation_created" {
		h.Hub.Broadcast(notificationJSON)
		return
	}
	h.Hub.Send(donation.DonorID, notificationJSON)
}
