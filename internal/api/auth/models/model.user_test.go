package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
	// Vai trò phân biệt hoa thường
	assert.False(t, (&User{Role: "Admin"}).IsAdmin())
}
