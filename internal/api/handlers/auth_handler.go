// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users store.UserStore
	Ngos  store.NGOStore
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DonorLogin xác thực donor và trả về JWT.
func (h *AuthHandler) DonorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.UserID, user.Name, user.Email, auth.RoleDonor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"user":   user,
	})
}

// NgoLogin xác thực NGO. Chỉ NGO đã Verified mới được đăng nhập.
func (h *AuthHandler) NgoLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ngo, err := h.Ngos.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up NGO"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, ngo.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !ngo.IsVerified() {
		c.JSON(http.StatusForbidden, gin.H{"error": "NGO is pending verification"})
		return
	}

	token, err := auth.GenerateJWT(ngo.NgoID, ngo.Name, ngo.Email, auth.RoleNGO)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"ngo":    ngo,
	})
}
