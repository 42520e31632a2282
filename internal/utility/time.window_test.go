package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"logi_track/internal/common"
)

// Ngày làm việc tính theo múi giờ kho (UTC-3), nên 00:00 giờ kho là 03:00 UTC.
func TestStartOfDay(t *testing.T) {
	t.Run("Ngày hợp lệ quy về 03:00 UTC", func(t *testing.T) {
		got, err := StartOfDay("2026-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("Sai định dạng trả về ErrInvalidDate", func(t *testing.T) {
		for _, bad := range []string{"", "15-01-2026", "2026/01/15", "2026-1-15", "2026-01-15T00:00:00Z", "hôm nay"} {
			_, err := StartOfDay(bad)
			assert.ErrorIs(t, err, common.ErrInvalidDate, "date=%q", bad)
		}
	})
}

func TestEndOfDay(t *testing.T) {
	t.Run("Kết thúc ngày là 23:59:59.999 giờ kho", func(t *testing.T) {
		got, err := EndOfDay("2026-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 16, 2, 59, 59, 999000000, time.UTC), got)
	})

	t.Run("Sai định dạng trả về ErrInvalidDate", func(t *testing.T) {
		_, err := EndOfDay("2026-13-40")
		assert.ErrorIs(t, err, common.ErrInvalidDate)
	})
}

func TestDayWindow(t *testing.T) {
	t.Run("Một ngày duy nhất", func(t *testing.T) {
		start, end, err := DayWindow("2026-01-15", "2026-01-15")
		assert.NoError(t, err)
		assert.True(t, start.Before(end))
		assert.Equal(t, time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 1, 16, 2, 59, 59, 999000000, time.UTC), end)
	})

	t.Run("Khoảng nhiều ngày", func(t *testing.T) {
		start, end, err := DayWindow("2026-01-01", "2026-01-31")
		assert.NoError(t, err)
		// 31 ngày, mỗi ngày 24h, trừ đi 1ms cuối
		assert.Equal(t, 31*24*time.Hour-time.Millisecond, end.Sub(start))
	})

	t.Run("From sai định dạng", func(t *testing.T) {
		_, _, err := DayWindow("bad", "2026-01-15")
		assert.ErrorIs(t, err, common.ErrInvalidDate)
	})

	t.Run("To sai định dạng", func(t *testing.T) {
		_, _, err := DayWindow("2026-01-15", "bad")
		assert.ErrorIs(t, err, common.ErrInvalidDate)
	})
}

func TestCurrentDay(t *testing.T) {
	day := CurrentDay()
	parsed, err := time.Parse(DayLayout, day)
	assert.NoError(t, err)

	// CurrentDay phải khớp với ngày hiện tại tính theo múi giờ kho
	now := time.Now().In(DepotZone)
	assert.Equal(t, now.Format(DayLayout), day)
	assert.False(t, parsed.IsZero())
}
