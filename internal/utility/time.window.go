package utility

import (
	"time"

	"logi_track/internal/common"
)

// DayLayout là định dạng ngày chuẩn dùng trong toàn bộ API (YYYY-MM-DD)
const DayLayout = "2006-01-02"

// DepotZone là múi giờ cố định của kho (UTC-3).
// Mọi "ngày làm việc" đều được tính theo múi giờ này, không theo múi giờ của server.
var DepotZone = time.FixedZone("-03:00", -3*60*60)

// StartOfDay trả về thời điểm bắt đầu ngày (00:00:00.000) theo múi giờ kho, quy về UTC.
// date phải đúng định dạng YYYY-MM-DD, sai định dạng trả về lỗi ErrInvalidDate.
func StartOfDay(date string) (time.Time, error) {
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return time.Time{}, common.ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, DepotZone).UTC(), nil
}

// EndOfDay trả về thời điểm kết thúc ngày (23:59:59.999) theo múi giờ kho, quy về UTC
func EndOfDay(date string) (time.Time, error) {
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return time.Time{}, common.ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), DepotZone).UTC(), nil
}

// DayWindow trả về cặp thời điểm [start, end] cho khoảng ngày from..to theo múi giờ kho
func DayWindow(from, to string) (time.Time, time.Time, error) {
	start, err := StartOfDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := EndOfDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// CurrentDay trả về ngày hiện tại (YYYY-MM-DD) theo múi giờ kho
func CurrentDay() string {
	return time.Now().In(DepotZone).Format(DayLayout)
}
