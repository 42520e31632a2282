package utility

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"logi_track/internal/api/auth/models"
)

// CreateToken tạo JWT token từ secret và dữ liệu định danh.
// expiry là thời gian sống của token.
func CreateToken(secret string, userID string, timeStr string, randomNumber string, expiry time.Duration) (string, error) {
	claims := models.JwtToken{
		UserID:       userID,
		Time:         timeStr,
		RandomNumber: randomNumber,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(expiry).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken giải mã và xác thực JWT token, trả về claims nếu token hợp lệ
func ParseToken(secret string, tokenString string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
