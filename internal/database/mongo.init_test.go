package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndexTag(t *testing.T) {
	t.Run("Single index", func(t *testing.T) {
		got := parseIndexTag("single")
		assert.Len(t, got, 1)
		_, hasSingle := got[0]["single"]
		assert.True(t, hasSingle)
	})

	t.Run("Single với order", func(t *testing.T) {
		got := parseIndexTag("single,order:-1")
		assert.Len(t, got, 1)
		assert.Equal(t, "-1", got[0]["order"])
	})

	t.Run("Unique sparse", func(t *testing.T) {
		got := parseIndexTag("unique,sparse")
		assert.Len(t, got, 1)
		_, hasUnique := got[0]["unique"]
		_, hasSparse := got[0]["sparse"]
		assert.True(t, hasUnique)
		assert.True(t, hasSparse)
	})

	t.Run("Compound với tên group", func(t *testing.T) {
		got := parseIndexTag("compound:closer_timestamp")
		assert.Len(t, got, 1)
		assert.Equal(t, "closer_timestamp", got[0]["compound"])
	})

	t.Run("Nhiều cấu hình phân cách bởi dấu chấm phẩy", func(t *testing.T) {
		got := parseIndexTag("single;compound:group_a")
		assert.Len(t, got, 2)
		_, hasSingle := got[0]["single"]
		assert.True(t, hasSingle)
		assert.Equal(t, "group_a", got[1]["compound"])
	})
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, -1, parseOrder("single,order:-1"))
	assert.Equal(t, 1, parseOrder("single"))
	assert.Equal(t, 1, parseOrder("single,order:1"))
}
