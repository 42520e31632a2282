package ordersdto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logi_track/internal/global"
)

func validate(t *testing.T, input interface{}) error {
	t.Helper()
	if global.Validate == nil {
		global.InitValidator()
	}
	return global.Validate.Struct(input)
}

func TestOrderCreateInputValidation(t *testing.T) {
	valid := OrderCreateInput{
		OrderNumber: 12345,
		Transport:   "Via Cargo",
		Packer:      "Alexis",
		Packages:    3,
	}

	t.Run("Input hợp lệ", func(t *testing.T) {
		assert.NoError(t, validate(t, &valid))
	})

	t.Run("Pallet không cần số kiện", func(t *testing.T) {
		input := valid
		input.Packages = 0
		input.IsPallet = true
		assert.NoError(t, validate(t, &input))
	})

	t.Run("Thiếu số đơn", func(t *testing.T) {
		input := valid
		input.OrderNumber = 0
		assert.Error(t, validate(t, &input))
	})

	t.Run("Số đơn âm", func(t *testing.T) {
		input := valid
		input.OrderNumber = -1
		assert.Error(t, validate(t, &input))
	})

	t.Run("Thiếu đơn vị vận chuyển", func(t *testing.T) {
		input := valid
		input.Transport = ""
		assert.Error(t, validate(t, &input))
	})

	t.Run("Người đóng gói ngoài danh sách", func(t *testing.T) {
		input := valid
		input.Packer = "Pedro"
		assert.Error(t, validate(t, &input))
	})

	t.Run("Số kiện âm", func(t *testing.T) {
		input := valid
		input.Packages = -1
		assert.Error(t, validate(t, &input))
	})
}

func TestOrderUpdateInputValidation(t *testing.T) {
	t.Run("Input rỗng hợp lệ, các trường đều omitempty", func(t *testing.T) {
		assert.NoError(t, validate(t, &OrderUpdateInput{}))
	})

	t.Run("Chỉ sửa đơn vị vận chuyển", func(t *testing.T) {
		assert.NoError(t, validate(t, &OrderUpdateInput{Transport: "Cruz del Sur"}))
	})

	t.Run("Người đóng gói ngoài danh sách", func(t *testing.T) {
		assert.Error(t, validate(t, &OrderUpdateInput{Packer: "Pedro"}))
	})

	t.Run("Số đơn âm", func(t *testing.T) {
		assert.Error(t, validate(t, &OrderUpdateInput{OrderNumber: -5}))
	})
}
