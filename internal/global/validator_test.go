package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordInput struct {
	Password string `validate:"strong_password"`
}

type commentInput struct {
	Content string `validate:"no_xss"`
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	t.Run("Mật khẩu hợp lệ", func(t *testing.T) {
		for _, pw := range []string{"Abcdef12", "abcdef1!", "ABCdef!@#", "Mật-Khẩu-8x"} {
			err := Validate.Struct(&passwordInput{Password: pw})
			assert.NoError(t, err, "password=%q", pw)
		}
	})

	t.Run("Mật khẩu yếu bị từ chối", func(t *testing.T) {
		for _, pw := range []string{"short1!", "abcdefgh", "12345678", "ABCDEFGH", "abcd1234"} {
			err := Validate.Struct(&passwordInput{Password: pw})
			assert.Error(t, err, "password=%q", pw)
		}
	})
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	t.Run("Nội dung bình thường", func(t *testing.T) {
		err := Validate.Struct(&commentInput{Content: "Đơn hàng giao qua Via Cargo"})
		assert.NoError(t, err)
	})

	t.Run("Nội dung chứa pattern nguy hiểm", func(t *testing.T) {
		for _, content := range []string{"<script>alert(1)</script>", "javascript:void(0)", "<img onerror=x>", "<IFRAME src=x>"} {
			err := Validate.Struct(&commentInput{Content: content})
			assert.Error(t, err, "content=%q", content)
		}
	})
}
