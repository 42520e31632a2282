package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("orders", "orders-collection")
	assert.NoError(t, err)
	assert.True(t, isNew)

	got, exists := r.Get("orders")
	assert.True(t, exists)
	assert.Equal(t, "orders-collection", got)

	// Đăng ký trùng tên sẽ ghi đè và trả về isNew=false
	isNew, err = r.Register("orders", "other")
	assert.NoError(t, err)
	assert.False(t, isNew)

	got, _ = r.Get("orders")
	assert.Equal(t, "other", got)
}

func TestRegistryEmptyName(t *testing.T) {
	r := NewRegistry[int]()

	_, err := r.Register("", 1)
	assert.Error(t, err)

	_, err = r.GetOrCreate("", func() (int, error) { return 1, nil })
	assert.Error(t, err)
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry[*int]()
	got, exists := r.Get("missing")
	assert.False(t, exists)
	assert.Nil(t, got)
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0

	creator := func() (int, error) {
		calls++
		return 42, nil
	}

	got, err := r.GetOrCreate("answer", creator)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	// Lần hai phải dùng lại item cũ, creator không được gọi thêm
	got, err = r.GetOrCreate("answer", creator)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)

	_, err = r.GetOrCreate("fail", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, exists := r.Get("fail")
	assert.False(t, exists)
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", "1")
	r.Register("b", "2")

	deleted, err := r.Clear("a", nil)
	assert.NoError(t, err)
	assert.True(t, deleted)
	_, exists := r.Get("a")
	assert.False(t, exists)

	deleted, err = r.Clear("missing", nil)
	assert.NoError(t, err)
	assert.False(t, deleted)

	count, err := r.ClearAll(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Register("shared", n)
		}(i)
		go func() {
			defer wg.Done()
			r.Get("shared")
		}()
	}
	wg.Wait()

	_, exists := r.Get("shared")
	assert.True(t, exists)
}
