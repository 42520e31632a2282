// Package models - model đơn hàng (Order) thuộc domain orders.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Danh sách nhân viên đóng gói hợp lệ
const (
	PackerAlexis = "Alexis"
	PackerMatias = "Matias"
	PackerNacho  = "Nacho"
	PackerGaston = "Gaston"
)

// Phân loại hình thức giao hàng, suy ra từ tên đơn vị vận chuyển
const (
	DeliveryTypeRetira  = "Retira"
	DeliveryTypeReparto = "Reparto"
)

// Order định nghĩa mô hình đơn hàng đã đóng gói.
// Timestamp là thời điểm chốt đơn (UTC), mọi thống kê theo ngày đều dựa trên field này.
// Closer là người chốt đơn (user đang đăng nhập khi tạo), CloserName được denormalize
// để màn hình thống kê không phải join sang collection users.
type Order struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp" index:"single,order:-1"`
	OrderNumber int64              `json:"orderNumber" bson:"orderNumber" index:"single"`
	Transport   string             `json:"transport" bson:"transport"`
	Packer      string             `json:"packer" bson:"packer"`
	Closer      primitive.ObjectID `json:"closer" bson:"closer" index:"single"`
	CloserName  string             `json:"closerName" bson:"closerName"`
	Packages    int                `json:"packages" bson:"packages"`
	IsPallet    bool               `json:"isPallet" bson:"isPallet"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// DeliveryType phân loại hình thức giao của đơn: đơn vị vận chuyển bắt đầu bằng
// "Retira" nghĩa là khách tự lấy hàng, còn lại là giao tận nơi.
func (o *Order) DeliveryType() string {
	if len(o.Transport) >= len(DeliveryTypeRetira) && o.Transport[:len(DeliveryTypeRetira)] == DeliveryTypeRetira {
		return DeliveryTypeRetira
	}
	return DeliveryTypeReparto
}
