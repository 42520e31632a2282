// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò của người dùng
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User định nghĩa mô hình người dùng
// Token chứa token xác thực mới nhất của người dùng
// Tokens chứa danh sách các token, mỗi thiết bị khác nhau sẽ có một token riêng để xác thực (bằng hwid)
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email" index:"unique"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      string             `json:"role" bson:"role"`
	Token     string             `json:"token,omitempty" bson:"token,omitempty"`
	Tokens    []Token            `json:"-" bson:"tokens,omitempty"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin kiểm tra người dùng có vai trò quản trị viên hay không
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
