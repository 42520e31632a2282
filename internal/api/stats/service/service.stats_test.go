package statssvc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "logi_track/internal/api/orders/models"
	statsdto "logi_track/internal/api/stats/dto"
	"logi_track/internal/utility"
)

func window(t *testing.T, startDate, endDate string) (time.Time, time.Time) {
	t.Helper()
	start, end, err := utility.DayWindow(startDate, endDate)
	assert.NoError(t, err)
	return start, end
}

func periodStats(t *testing.T, raw *facetResult, startDate, endDate string) *statsdto.PeriodStats {
	t.Helper()
	start, end := window(t, startDate, endDate)
	period := &statsdto.Period{StartDate: startDate, EndDate: endDate}
	return buildPeriodStats(raw, period, start, end)
}

func TestTotalDays(t *testing.T) {
	t.Run("Một ngày", func(t *testing.T) {
		start, end := window(t, "2026-01-15", "2026-01-15")
		assert.Equal(t, int64(1), totalDays(start, end))
	})

	t.Run("Bảy ngày", func(t *testing.T) {
		start, end := window(t, "2026-01-01", "2026-01-07")
		assert.Equal(t, int64(7), totalDays(start, end))
	})

	t.Run("Qua tháng", func(t *testing.T) {
		start, end := window(t, "2026-01-30", "2026-02-02")
		assert.Equal(t, int64(4), totalDays(start, end))
	})

	t.Run("Tối thiểu là 1 ngày", func(t *testing.T) {
		now := time.Now()
		assert.Equal(t, int64(1), totalDays(now, now))
		assert.Equal(t, int64(1), totalDays(now, now.Add(-time.Hour)))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 66.67, round2(200.0/3))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 12.5, round2(12.5))
	assert.Equal(t, 2.68, round2(2.675000001))
}

func TestBuildGroupStats(t *testing.T) {
	t.Run("Giữ nguyên key _id và các tổng theo nhóm", func(t *testing.T) {
		rows := []facetGroupRow{
			{Name: "Alexis", Count: 6, TotalPackages: 18, TotalPallets: 1},
			{Name: "Matias", Count: 3, TotalPackages: 9, TotalPallets: 0},
		}
		got := buildGroupStats(rows)

		assert.Len(t, got, 2)
		assert.Equal(t, "Alexis", got[0].ID)
		assert.Equal(t, int64(6), got[0].Count)
		assert.Equal(t, int64(18), got[0].TotalPackages)
		assert.Equal(t, int64(1), got[0].TotalPallets)
		assert.Equal(t, "Matias", got[1].ID)
	})

	t.Run("Không có dòng nào trả về slice rỗng", func(t *testing.T) {
		got := buildGroupStats(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestBuildTransportStats(t *testing.T) {
	t.Run("Phần trăm tính trên tổng số đơn, không làm tròn", func(t *testing.T) {
		rows := []facetGroupRow{
			{Name: "Via Cargo", Count: 2},
			{Name: "Retira", Count: 1},
		}
		got := buildTransportStats(rows, 3)

		assert.Len(t, got, 2)
		assert.Equal(t, "Via Cargo", got[0].Name)
		// 2/3 của 100 là số vô hạn tuần hoàn, phải giữ nguyên giá trị thô
		assert.InDelta(t, 66.666666, got[0].Percentage, 0.0001)
		assert.InDelta(t, 33.333333, got[1].Percentage, 0.0001)
		assert.NotEqual(t, 66.67, got[0].Percentage)

		var sum float64
		for _, g := range got {
			sum += g.Percentage
		}
		assert.InDelta(t, 100.0, sum, 0.0001)
	})

	t.Run("Tổng bằng 0 thì phần trăm bằng 0", func(t *testing.T) {
		rows := []facetGroupRow{{Name: "Retira", Count: 0}}
		got := buildTransportStats(rows, 0)
		assert.Len(t, got, 1)
		assert.Equal(t, 0.0, got[0].Percentage)
	})
}

func TestBuildPeriodStats(t *testing.T) {
	t.Run("Facet rỗng trả về số liệu zero với slice rỗng", func(t *testing.T) {
		stats := periodStats(t, &facetResult{}, "2026-01-15", "2026-01-15")

		assert.Equal(t, int64(0), stats.Summary.TotalOrders)
		assert.Equal(t, int64(0), stats.Summary.TotalPackages)
		assert.Equal(t, int64(0), stats.Summary.TotalPallets)
		assert.Equal(t, 0.0, stats.Summary.DailyAverage)
		assert.Equal(t, "2026-01-15", stats.Query.StartDate)
		assert.Equal(t, "2026-01-15", stats.Query.EndDate)
		assert.Equal(t, int64(1), stats.Query.TotalDays)

		// Slices phải là mảng rỗng (không nil) để serialize thành [] thay vì null
		assert.NotNil(t, stats.ByPacker)
		assert.NotNil(t, stats.ByUser)
		assert.NotNil(t, stats.ByTransport)
		assert.NotNil(t, stats.OrdersByDay)

		// Cả hai hình thức giao luôn có mặt, kể cả khi bằng 0
		assert.Len(t, stats.DeliveryTypeTotals, 2)
		assert.Equal(t, models.DeliveryTypeRetira, stats.DeliveryTypeTotals[0].ID)
		assert.Equal(t, int64(0), stats.DeliveryTypeTotals[0].Count)
		assert.Equal(t, models.DeliveryTypeReparto, stats.DeliveryTypeTotals[1].ID)
		assert.Equal(t, int64(0), stats.DeliveryTypeTotals[1].Count)
	})

	t.Run("Tính trung bình đơn mỗi ngày", func(t *testing.T) {
		raw := &facetResult{
			Totals: []facetGroupRow{{Count: 25, TotalPackages: 70, TotalPallets: 3}},
		}
		stats := periodStats(t, raw, "2026-01-01", "2026-01-10")

		assert.Equal(t, int64(25), stats.Summary.TotalOrders)
		assert.Equal(t, int64(70), stats.Summary.TotalPackages)
		assert.Equal(t, int64(3), stats.Summary.TotalPallets)
		assert.Equal(t, int64(10), stats.Query.TotalDays)
		assert.Equal(t, 2.5, stats.Summary.DailyAverage)
	})

	t.Run("Phân loại hình thức giao theo prefix Retira", func(t *testing.T) {
		raw := &facetResult{
			Totals: []facetGroupRow{{Count: 10}},
			ByTransport: []facetGroupRow{
				{Name: "Retira", Count: 3},
				{Name: "Retira en deposito", Count: 2},
				{Name: "Via Cargo", Count: 4},
				{Name: "Cruz del Sur", Count: 1},
			},
		}
		stats := periodStats(t, raw, "2026-01-15", "2026-01-15")

		assert.Equal(t, models.DeliveryTypeRetira, stats.DeliveryTypeTotals[0].ID)
		assert.Equal(t, int64(5), stats.DeliveryTypeTotals[0].Count)
		assert.Equal(t, models.DeliveryTypeReparto, stats.DeliveryTypeTotals[1].ID)
		assert.Equal(t, int64(5), stats.DeliveryTypeTotals[1].Count)
		assert.Len(t, stats.ByTransport, 4)
	})

	t.Run("OrdersByDay giữ nguyên thứ tự ngày", func(t *testing.T) {
		raw := &facetResult{
			Totals: []facetGroupRow{{Count: 5}},
			OrdersByDay: []facetDayRow{
				{ID: statsdto.DayKey{Year: 2026, Month: 1, Day: 1}, Count: 2},
				{ID: statsdto.DayKey{Year: 2026, Month: 1, Day: 2}, Count: 1},
				{ID: statsdto.DayKey{Year: 2026, Month: 1, Day: 3}, Count: 2},
			},
		}
		stats := periodStats(t, raw, "2026-01-01", "2026-01-03")

		assert.Len(t, stats.OrdersByDay, 3)
		assert.Equal(t, statsdto.DayKey{Year: 2026, Month: 1, Day: 1}, stats.OrdersByDay[0].ID)
		assert.Equal(t, statsdto.DayKey{Year: 2026, Month: 1, Day: 3}, stats.OrdersByDay[2].ID)
		assert.Equal(t, int64(1), stats.OrdersByDay[1].Count)
	})
}

// TestStatsQueryInputJSON kiểm tra tên field trong request body mà client gửi lên
func TestStatsQueryInputJSON(t *testing.T) {
	body := `{
		"primaryPeriod": { "startDate": "2025-07-01", "endDate": "2025-07-31" },
		"comparisonPeriod": { "startDate": "2025-06-01", "endDate": "2025-06-30" },
		"includeDetails": true
	}`

	var input statsdto.StatsQueryInput
	assert.NoError(t, json.Unmarshal([]byte(body), &input))

	assert.Equal(t, "2025-07-01", input.PrimaryPeriod.StartDate)
	assert.Equal(t, "2025-07-31", input.PrimaryPeriod.EndDate)
	assert.NotNil(t, input.ComparisonPeriod)
	assert.Equal(t, "2025-06-01", input.ComparisonPeriod.StartDate)
	assert.Equal(t, "2025-06-30", input.ComparisonPeriod.EndDate)
	assert.True(t, input.IncludeDetails)

	t.Run("Không truyền comparisonPeriod", func(t *testing.T) {
		var short statsdto.StatsQueryInput
		assert.NoError(t, json.Unmarshal([]byte(`{"primaryPeriod":{"startDate":"2025-07-01","endDate":"2025-07-01"}}`), &short))
		assert.Nil(t, short.ComparisonPeriod)
		assert.False(t, short.IncludeDetails)
	})
}

// TestStatsQueryResultJSON kiểm tra tên field trong response body ở mức serialize,
// đúng shape mà dashboard đọc: query/summary lồng trong primaryData, nhóm theo _id,
// ordersByDay theo {year,month,day} và deliveryTypeTotals là mảng
func TestStatsQueryResultJSON(t *testing.T) {
	raw := &facetResult{
		Totals: []facetGroupRow{{Count: 3, TotalPackages: 5, TotalPallets: 2}},
		ByPacker: []facetGroupRow{
			{Name: "Alexis", Count: 2, TotalPallets: 2},
			{Name: "Matias", Count: 1, TotalPackages: 5},
		},
		ByTransport: []facetGroupRow{{Name: "Retira", Count: 3}},
		OrdersByDay: []facetDayRow{{ID: statsdto.DayKey{Year: 2025, Month: 7, Day: 1}, Count: 3}},
	}
	result := &statsdto.StatsQueryResult{
		PrimaryData: periodStats(t, raw, "2025-07-01", "2025-07-01"),
		Details:     []models.Order{},
	}

	encoded, err := json.Marshal(result)
	assert.NoError(t, err)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(encoded, &body))
	assert.Contains(t, body, "primaryData")
	assert.Contains(t, body, "comparisonData")
	assert.Contains(t, body, "details")
	assert.Equal(t, "null", string(body["comparisonData"]))
	assert.Equal(t, "[]", string(body["details"]))

	var primary map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(body["primaryData"], &primary))
	for _, key := range []string{"query", "summary", "byPacker", "byUser", "byTransport", "ordersByDay", "deliveryTypeTotals"} {
		assert.Contains(t, primary, key)
	}

	var query map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["query"], &query))
	assert.Equal(t, "2025-07-01", query["startDate"])
	assert.Equal(t, "2025-07-01", query["endDate"])
	assert.Equal(t, float64(1), query["totalDays"])

	var summary map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["summary"], &summary))
	assert.Equal(t, float64(3), summary["totalOrders"])
	assert.Equal(t, float64(3), summary["dailyAverage"])
	assert.Equal(t, float64(2), summary["totalPallets"])
	assert.Equal(t, float64(5), summary["totalPackages"])

	var byPacker []map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["byPacker"], &byPacker))
	assert.Len(t, byPacker, 2)
	assert.Equal(t, "Alexis", byPacker[0]["_id"])
	assert.Equal(t, float64(2), byPacker[0]["count"])
	assert.Equal(t, float64(2), byPacker[0]["totalPallets"])
	assert.Equal(t, "Matias", byPacker[1]["_id"])
	assert.Equal(t, float64(5), byPacker[1]["totalPackages"])
	assert.NotContains(t, byPacker[0], "name")
	assert.NotContains(t, byPacker[0], "percentage")

	var byTransport []map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["byTransport"], &byTransport))
	assert.Len(t, byTransport, 1)
	assert.Equal(t, "Retira", byTransport[0]["name"])
	assert.Equal(t, float64(100), byTransport[0]["percentage"])

	var ordersByDay []map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["ordersByDay"], &ordersByDay))
	assert.Len(t, ordersByDay, 1)
	day, ok := ordersByDay[0]["_id"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(2025), day["year"])
	assert.Equal(t, float64(7), day["month"])
	assert.Equal(t, float64(1), day["day"])
	assert.Equal(t, float64(3), ordersByDay[0]["count"])

	var deliveryTotals []map[string]interface{}
	assert.NoError(t, json.Unmarshal(primary["deliveryTypeTotals"], &deliveryTotals))
	assert.Len(t, deliveryTotals, 2)
	assert.Equal(t, models.DeliveryTypeRetira, deliveryTotals[0]["_id"])
	assert.Equal(t, float64(3), deliveryTotals[0]["count"])
	assert.Equal(t, models.DeliveryTypeReparto, deliveryTotals[1]["_id"])
	assert.Equal(t, float64(0), deliveryTotals[1]["count"])
}
