package ordersdto

// OrderCreateInput đầu vào tạo đơn hàng mới.
// Closer và timestamp không nhận từ client, server tự gán từ phiên đăng nhập.
type OrderCreateInput struct {
	OrderNumber int64  `json:"orderNumber" validate:"required,gt=0"`
	Transport   string `json:"transport" validate:"required"`
	Packer      string `json:"packer" validate:"required,oneof=Alexis Matias Nacho Gaston"`
	Packages    int    `json:"packages" validate:"gte=0"`
	IsPallet    bool   `json:"isPallet"`
}

// OrderUpdateInput đầu vào sửa đơn hàng.
// Chỉ cho phép sửa số đơn, đơn vị vận chuyển và người đóng gói.
type OrderUpdateInput struct {
	OrderNumber int64  `json:"orderNumber" validate:"omitempty,gt=0"`
	Transport   string `json:"transport"`
	Packer      string `json:"packer" validate:"omitempty,oneof=Alexis Matias Nacho Gaston"`
}

// OrderNumberParams params chứa số đơn hàng trên URL
type OrderNumberParams struct {
	OrderNumber int64 `uri:"orderNumber" validate:"required,gt=0"`
}

// OrderTodaySummary tổng hợp nhanh các đơn trong ngày của một nhân viên
type OrderTodaySummary struct {
	TotalOrders   int64 `json:"totalOrders"`
	TotalPackages int64 `json:"totalPackages"`
	TotalPallets  int64 `json:"totalPallets"`
}
