package utility

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndParseToken(t *testing.T) {
	secret := "test-secret"

	t.Run("Token hợp lệ parse được claims", func(t *testing.T) {
		token, err := CreateToken(secret, "64f0c3e2a1b2c3d4e5f60718", "1a2b3c", "42", time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseToken(secret, token)
		assert.NoError(t, err)
		assert.Equal(t, "64f0c3e2a1b2c3d4e5f60718", claims.UserID)
		assert.Equal(t, "1a2b3c", claims.Time)
		assert.Equal(t, "42", claims.RandomNumber)
	})

	t.Run("Sai secret bị từ chối", func(t *testing.T) {
		token, err := CreateToken(secret, "user", "t", "1", time.Hour)
		assert.NoError(t, err)

		_, err = ParseToken("wrong-secret", token)
		assert.Error(t, err)
	})

	t.Run("Token hết hạn bị từ chối", func(t *testing.T) {
		token, err := CreateToken(secret, "user", "t", "1", -time.Hour)
		assert.NoError(t, err)

		_, err = ParseToken(secret, token)
		assert.Error(t, err)

		// Lỗi phải mang cờ expired để middleware phân biệt với token sai chữ ký
		ve, ok := err.(*jwt.ValidationError)
		assert.True(t, ok)
		assert.NotZero(t, ve.Errors&jwt.ValidationErrorExpired)
	})

	t.Run("Chuỗi rác không phải token", func(t *testing.T) {
		_, err := ParseToken(secret, "not.a.token")
		assert.Error(t, err)
	})
}
