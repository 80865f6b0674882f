// server/internal/api/handlers/ngo_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"need-feeder-api-server/internal/matching"
	"need-feeder-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type NgoHandler struct {
	Ngos            store.NGOStore
	Users           store.UserStore
	Matcher         *matching.Engine
	DefaultRadiusKm float64
}

// GetVerifiedNgos trả về danh sách NGO đã duyệt (dùng cho manual selection,
// không lọc theo khoảng cách).
func (h *NgoHandler) GetVerifiedNgos(c *gin.Context) {
	ngos, err := h.Ngos.Verified(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query NGOs"})
		return
	}
	c.JSON(http.StatusOK, ngos)
}

// GetNgoByID lấy thông tin một NGO theo id.
func (h *NgoHandler) GetNgoByID(c *gin.Context) {
	ngoID := c.Param("id")

	ngo, err := h.Ngos.GetByID(c.Request.Context(), ngoID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "NGO not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve NGO"})
		}
		return
	}

	c.JSON(http.StatusOK, ngo)
}

// FindNearby chạy matching engine quanh vị trí của donor đang đăng nhập.
// Ví dụ: /ngos/nearby?radiusKm=5
func (h *NgoHandler) FindNearby(c *gin.Context) {
	donorID := c.GetString("account_id")

	donor, err := h.Users.GetByID(c.Request.Context(), donorID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donor"})
		}
		return
	}

	radiusKm := h.DefaultRadiusKm
	if raw := c.Query("radiusKm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radiusKm must be a non-negative number"})
			return
		}
		radiusKm = parsed
	}

	nearby, err := h.Matcher.FindNearbyNgos(c.Request.Context(), donor.Location, radiusKm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run NGO matching"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"radiusKm": radiusKm,
		"ngos":     nearby,
	})
}
