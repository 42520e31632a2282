package statsdto

import (
	models "logi_track/internal/api/orders/models"
)

// Period là một khoảng ngày đóng [startDate, endDate] theo định dạng YYYY-MM-DD
type Period struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// StatsQueryInput đầu vào truy vấn thống kê.
// PrimaryPeriod bắt buộc, ComparisonPeriod tùy chọn để so sánh hai khoảng thời gian.
// IncludeDetails yêu cầu trả kèm danh sách đơn chi tiết của khoảng chính.
type StatsQueryInput struct {
	PrimaryPeriod    Period  `json:"primaryPeriod" validate:"required"`
	ComparisonPeriod *Period `json:"comparisonPeriod" validate:"omitempty"`
	IncludeDetails   bool    `json:"includeDetails"`
}

// PeriodQuery phản hồi lại khoảng ngày đã truy vấn kèm tổng số ngày trong cửa sổ
type PeriodQuery struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	TotalDays int64  `json:"totalDays"`
}

// PeriodSummary tổng hợp toàn cửa sổ: số đơn, trung bình mỗi ngày, tổng pallet và tổng kiện
type PeriodSummary struct {
	TotalOrders   int64   `json:"totalOrders"`
	DailyAverage  float64 `json:"dailyAverage"`
	TotalPallets  int64   `json:"totalPallets"`
	TotalPackages int64   `json:"totalPackages"`
}

// GroupStat thống kê theo một nhóm (người đóng gói hoặc người chốt đơn).
// Key _id giữ nguyên từ kết quả $group để client dùng trực tiếp.
type GroupStat struct {
	ID            string `json:"_id"`
	Count         int64  `json:"count"`
	TotalPackages int64  `json:"totalPackages"`
	TotalPallets  int64  `json:"totalPallets"`
}

// TransportStat thống kê theo đơn vị vận chuyển kèm phần trăm trên tổng số đơn
type TransportStat struct {
	Name          string  `json:"name"`
	Count         int64   `json:"count"`
	TotalPackages int64   `json:"totalPackages"`
	TotalPallets  int64   `json:"totalPallets"`
	Percentage    float64 `json:"percentage"`
}

// DayKey khóa ngày dương lịch theo múi giờ kho
type DayKey struct {
	Year  int `json:"year" bson:"year"`
	Month int `json:"month" bson:"month"`
	Day   int `json:"day" bson:"day"`
}

// DayStat số đơn theo từng ngày (ngày tính theo múi giờ kho)
type DayStat struct {
	ID    DayKey `json:"_id"`
	Count int64  `json:"count"`
}

// DeliveryTypeTotal tổng số đơn theo hình thức giao (Retira hoặc Reparto)
type DeliveryTypeTotal struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

// PeriodStats kết quả thống kê của một khoảng thời gian
type PeriodStats struct {
	Query              PeriodQuery         `json:"query"`
	Summary            PeriodSummary       `json:"summary"`
	ByPacker           []GroupStat         `json:"byPacker"`
	ByUser             []GroupStat         `json:"byUser"`
	ByTransport        []TransportStat     `json:"byTransport"`
	OrdersByDay        []DayStat           `json:"ordersByDay"`
	DeliveryTypeTotals []DeliveryTypeTotal `json:"deliveryTypeTotals"`
}

// StatsQueryResult kết quả trả về của POST /stats/query.
// ComparisonData là null khi không truyền comparisonPeriod.
// Details luôn là mảng (rỗng nếu không yêu cầu chi tiết), không bao giờ bị omit.
type StatsQueryResult struct {
	PrimaryData    *PeriodStats   `json:"primaryData"`
	ComparisonData *PeriodStats   `json:"comparisonData"`
	Details        []models.Order `json:"details"`
}
