package middleware

import (
	"net/http"
	"strings"

	"need-feeder-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Authenticate là middleware xác thực token JWT.
// Nó kiểm tra tính hợp lệ của token và đưa thông tin user vào context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Lưu thông tin user vào context của request
		c.Set("account_id", claims.AccountID)
		c.Set("account_name", claims.Name)
		c.Set("account_role", claims.Role)

		c.Next()
	}
}

// Authorize là một middleware factory để kiểm tra vai trò của người dùng.
// Nó nhận vào một danh sách các vai trò được phép và trả về một middleware.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("account_role")
		if !exists {
			// Lỗi này không nên xảy ra nếu Authenticate được gọi trước
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account role not found in context"})
			return
		}

		role, ok := roleInterface.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account role has an invalid type"})
			return
		}

		for _, allowed := range allowedRoles {
			if allowed == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
