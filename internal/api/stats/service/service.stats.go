// Package statssvc - service thống kê đơn hàng theo khoảng thời gian.
package statssvc

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "logi_track/internal/api/base/service"
	models "logi_track/internal/api/orders/models"
	statsdto "logi_track/internal/api/stats/dto"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/utility"
)

// StatsService là cấu trúc chứa các phương thức thống kê trên collection orders
type StatsService struct {
	orders *basesvc.BaseServiceMongoImpl[models.Order]
}

// NewStatsService tạo mới StatsService
func NewStatsService() (*StatsService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	return &StatsService{
		orders: basesvc.NewBaseServiceMongo[models.Order](orderCollection),
	}, nil
}

// facetGroupRow là một dòng kết quả $group trong facet (theo packer/user/transport)
type facetGroupRow struct {
	Name          string `bson:"_id"`
	Count         int64  `bson:"count"`
	TotalPackages int64  `bson:"totalPackages"`
	TotalPallets  int64  `bson:"totalPallets"`
}

// facetDayRow là một dòng kết quả nhóm theo ngày dương lịch
type facetDayRow struct {
	ID    statsdto.DayKey `bson:"_id"`
	Count int64           `bson:"count"`
}

// facetResult là kết quả thô của pipeline $facet
type facetResult struct {
	Totals      []facetGroupRow `bson:"totals"`
	ByPacker    []facetGroupRow `bson:"byPacker"`
	ByUser      []facetGroupRow `bson:"byUser"`
	ByTransport []facetGroupRow `bson:"byTransport"`
	OrdersByDay []facetDayRow   `bson:"ordersByDay"`
}

// groupFacet tạo sub-pipeline nhóm theo một field: đếm đơn, cộng kiện (bỏ qua pallet)
// và đếm pallet riêng, sắp xếp theo số đơn giảm dần
func groupFacet(field string) bson.A {
	return bson.A{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           field,
			"count":         bson.M{"$sum": 1},
			"totalPackages": bson.M{"$sum": bson.M{"$cond": bson.A{"$isPallet", 0, "$packages"}}},
			"totalPallets":  bson.M{"$sum": bson.M{"$cond": bson.A{"$isPallet", 1, 0}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}

// AggregatePeriod thống kê một khoảng ngày [startDate, endDate] bằng một pipeline $facet duy nhất.
// Khoảng ngày được quy về cửa sổ thời gian theo múi giờ kho (UTC-3) trước khi match.
func (s *StatsService) AggregatePeriod(ctx context.Context, period *statsdto.Period) (*statsdto.PeriodStats, error) {
	start, end, err := utility.DayWindow(period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Khoảng ngày không hợp lệ, startDate phải trước hoặc bằng endDate",
			common.StatusBadRequest,
			nil,
		)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"timestamp": bson.M{"$gte": start, "$lte": end},
		}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"totals": bson.A{
				bson.D{{Key: "$group", Value: bson.M{
					"_id":           nil,
					"count":         bson.M{"$sum": 1},
					"totalPackages": bson.M{"$sum": bson.M{"$cond": bson.A{"$isPallet", 0, "$packages"}}},
					"totalPallets":  bson.M{"$sum": bson.M{"$cond": bson.A{"$isPallet", 1, 0}}},
				}}},
			},
			"byPacker":    groupFacet("$packer"),
			"byUser":      groupFacet("$closerName"),
			"byTransport": groupFacet("$transport"),
			"ordersByDay": bson.A{
				bson.D{{Key: "$group", Value: bson.M{
					"_id": bson.M{
						"year":  bson.M{"$year": bson.M{"date": "$timestamp", "timezone": "-03:00"}},
						"month": bson.M{"$month": bson.M{"date": "$timestamp", "timezone": "-03:00"}},
						"day":   bson.M{"$dayOfMonth": bson.M{"date": "$timestamp", "timezone": "-03:00"}},
					},
					"count": bson.M{"$sum": 1},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{
					{Key: "_id.year", Value: 1},
					{Key: "_id.month", Value: 1},
					{Key: "_id.day", Value: 1},
				}}},
			},
		}}},
	}

	cursor, err := s.orders.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var raw []facetResult
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if len(raw) == 0 {
		raw = []facetResult{{}}
	}

	return buildPeriodStats(&raw[0], period, start, end), nil
}

// buildPeriodStats hoàn thiện kết quả thống kê từ dữ liệu thô của facet:
// tính tổng số ngày, trung bình đơn mỗi ngày, phần trăm theo đơn vị vận chuyển
// và tổng theo hình thức giao
func buildPeriodStats(raw *facetResult, period *statsdto.Period, start, end time.Time) *statsdto.PeriodStats {
	stats := &statsdto.PeriodStats{
		ByPacker:    []statsdto.GroupStat{},
		ByUser:      []statsdto.GroupStat{},
		ByTransport: []statsdto.TransportStat{},
		OrdersByDay: []statsdto.DayStat{},
	}

	if len(raw.Totals) > 0 {
		stats.Summary.TotalOrders = raw.Totals[0].Count
		stats.Summary.TotalPackages = raw.Totals[0].TotalPackages
		stats.Summary.TotalPallets = raw.Totals[0].TotalPallets
	}

	stats.Query = statsdto.PeriodQuery{
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		TotalDays: totalDays(start, end),
	}
	stats.Summary.DailyAverage = round2(float64(stats.Summary.TotalOrders) / float64(stats.Query.TotalDays))

	stats.ByPacker = buildGroupStats(raw.ByPacker)
	stats.ByUser = buildGroupStats(raw.ByUser)
	stats.ByTransport = buildTransportStats(raw.ByTransport, stats.Summary.TotalOrders)

	for _, day := range raw.OrdersByDay {
		stats.OrdersByDay = append(stats.OrdersByDay, statsdto.DayStat{ID: day.ID, Count: day.Count})
	}

	var retira, reparto int64
	for _, row := range raw.ByTransport {
		if strings.HasPrefix(row.Name, models.DeliveryTypeRetira) {
			retira += row.Count
		} else {
			reparto += row.Count
		}
	}
	// Cả hai hình thức giao luôn có mặt trong mảng, kể cả khi bằng 0
	stats.DeliveryTypeTotals = []statsdto.DeliveryTypeTotal{
		{ID: models.DeliveryTypeRetira, Count: retira},
		{ID: models.DeliveryTypeReparto, Count: reparto},
	}

	return stats
}

// buildGroupStats chuyển các dòng $group sang GroupStat, giữ nguyên key _id
func buildGroupStats(rows []facetGroupRow) []statsdto.GroupStat {
	result := make([]statsdto.GroupStat, 0, len(rows))
	for _, row := range rows {
		result = append(result, statsdto.GroupStat{
			ID:            row.Name,
			Count:         row.Count,
			TotalPackages: row.TotalPackages,
			TotalPallets:  row.TotalPallets,
		})
	}
	return result
}

// buildTransportStats chuyển các dòng $group theo đơn vị vận chuyển sang TransportStat
// kèm phần trăm trên tổng số đơn. Phần trăm bằng 0 khi không có đơn nào để tránh chia cho 0.
func buildTransportStats(rows []facetGroupRow, totalOrders int64) []statsdto.TransportStat {
	result := make([]statsdto.TransportStat, 0, len(rows))
	for _, row := range rows {
		percentage := 0.0
		if totalOrders > 0 {
			percentage = float64(row.Count) * 100 / float64(totalOrders)
		}
		result = append(result, statsdto.TransportStat{
			Name:          row.Name,
			Count:         row.Count,
			TotalPackages: row.TotalPackages,
			TotalPallets:  row.TotalPallets,
			Percentage:    percentage,
		})
	}
	return result
}

// totalDays số ngày trong cửa sổ [start, end], tối thiểu là 1
func totalDays(start, end time.Time) int64 {
	days := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// round2 làm tròn 2 chữ số thập phân
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Details trả về danh sách đơn chi tiết trong khoảng ngày, mới nhất trước
func (s *StatsService) Details(ctx context.Context, period *statsdto.Period) ([]models.Order, error) {
	start, end, err := utility.DayWindow(period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	orders, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Query thực hiện truy vấn thống kê đầy đủ: khoảng chính, khoảng so sánh (nếu có)
// và danh sách đơn chi tiết (nếu yêu cầu)
func (s *StatsService) Query(ctx context.Context, input *statsdto.StatsQueryInput) (*statsdto.StatsQueryResult, error) {
	primary, err := s.AggregatePeriod(ctx, &input.PrimaryPeriod)
	if err != nil {
		return nil, err
	}

	result := &statsdto.StatsQueryResult{
		PrimaryData: primary,
		Details:     []models.Order{},
	}

	if input.ComparisonPeriod != nil {
		comparison, err := s.AggregatePeriod(ctx, input.ComparisonPeriod)
		if err != nil {
			return nil, err
		}
		result.ComparisonData = comparison
	}

	if input.IncludeDetails {
		details, err := s.Details(ctx, &input.PrimaryPeriod)
		if err != nil {
			return nil, err
		}
		result.Details = details
	}

	return result, nil
}
