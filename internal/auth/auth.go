// server/internal/auth/auth.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role phân biệt donor và NGO trong JWT.
const (
	RoleDonor = "donor"
	RoleNGO   = "ngo"
)

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	AccountID string `json:"accountId"` // userID or ngoID
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // "donor" or "ngo"
	jwt.RegisteredClaims
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// JwtSecret được gán từ config trong main trước khi server chạy.
var JwtSecret = []byte("YOUR_SUPER_SECRET_KEY")

func GenerateJWT(accountID, name, email, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &JWTClaims{
		AccountID: accountID,
		Name:      name,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}

// ParseToken kiểm tra chữ ký và hạn của token, trả về claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
