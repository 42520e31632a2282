package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs(t *testing.T) {
	t.Run("Sentinel error khớp qua errors.Is", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup failed: %w", ErrNotFound)
		assert.ErrorIs(t, wrapped, ErrNotFound)
	})

	t.Run("Hai lỗi khác code không khớp", func(t *testing.T) {
		assert.NotErrorIs(t, ErrNotFound, ErrDuplicate)
		assert.NotErrorIs(t, ErrTokenInvalid, ErrTokenExpired)
	})
}

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeValidationInput, "Dữ liệu sai", StatusBadRequest, nil)

	var customErr *Error
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, "VAL_001", customErr.Code.Code)
	assert.Equal(t, StatusBadRequest, customErr.StatusCode)
	assert.Equal(t, "Dữ liệu sai", customErr.Error())
}

func TestConvertMongoError(t *testing.T) {
	t.Run("Nil giữ nguyên nil", func(t *testing.T) {
		assert.NoError(t, ConvertMongoError(nil))
	})

	t.Run("ErrNotFound không bị convert", func(t *testing.T) {
		got := ConvertMongoError(ErrNotFound)
		assert.ErrorIs(t, got, ErrNotFound)
	})

	t.Run("Lỗi nghiệp vụ typed giữ nguyên", func(t *testing.T) {
		got := ConvertMongoError(ErrNotOrderOwner)
		assert.ErrorIs(t, got, ErrNotOrderOwner)
	})

	t.Run("Lỗi duplicate key thành ErrMongoDuplicate", func(t *testing.T) {
		dupErr := mongo.WriteException{
			WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
		}
		got := ConvertMongoError(dupErr)
		assert.ErrorIs(t, got, ErrMongoDuplicate)
	})

	t.Run("Command error theo dải mã", func(t *testing.T) {
		got := ConvertMongoError(mongo.CommandError{Code: 150, Message: "host unreachable"})
		assert.ErrorIs(t, got, ErrMongoConnection)

		got = ConvertMongoError(mongo.CommandError{Code: 250, Message: "unauthorized"})
		assert.ErrorIs(t, got, ErrMongoAuth)
	})

	t.Run("Lỗi lạ trả về lỗi database chung với status 500", func(t *testing.T) {
		got := ConvertMongoError(errors.New("something strange"))
		var customErr *Error
		assert.ErrorAs(t, got, &customErr)
		assert.Equal(t, StatusInternalServerError, customErr.StatusCode)
		assert.Equal(t, ErrCodeDatabase.Code, customErr.Code.Code)
	})
}
