package statshdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	statsdto "logi_track/internal/api/stats/dto"
	statssvc "logi_track/internal/api/stats/service"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/logger"
)

// StatsHandler xử lý request truy vấn thống kê
type StatsHandler struct {
	statsService *statssvc.StatsService
}

// NewStatsHandler tạo instance mới của StatsHandler
func NewStatsHandler() (*StatsHandler, error) {
	statsService, err := statssvc.NewStatsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create stats service: %v", err)
	}
	return &StatsHandler{statsService: statsService}, nil
}

// HandleStatsQuery xử lý POST /stats/query.
// Khác với các endpoint còn lại, response trả về body thô (không bọc envelope)
// để giữ tương thích với màn hình dashboard: {primaryData, comparisonData, details}.
// Lỗi trả về dạng {"message": "..."} với status 400 (dữ liệu sai) hoặc 500.
func (h *StatsHandler) HandleStatsQuery(c fiber.Ctx) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			rawError(c, common.StatusInternalServerError, fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r))
		}
	}()

	var input statsdto.StatsQueryInput
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(&input); err != nil {
		return rawError(c, common.StatusBadRequest, fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err))
	}

	if global.Validate != nil {
		if err := global.Validate.Struct(&input); err != nil {
			return rawError(c, common.StatusBadRequest, fmt.Sprintf("Dữ liệu đầu vào không hợp lệ: %v", err))
		}
	}

	result, err := h.statsService.Query(c.Context(), &input)
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return rawError(c, customErr.StatusCode, customErr.Message)
		}
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"error": err.Error(),
			"path":  c.Path(),
		}).Error("HandleStatsQuery: Lỗi khi thực hiện truy vấn thống kê")
		return rawError(c, common.StatusInternalServerError, err.Error())
	}

	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(common.StatusOK).JSON(result)
}

// rawError trả lỗi dạng thô {"message": ...} cho endpoint thống kê
func rawError(c fiber.Ctx, statusCode int, message string) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(fiber.Map{"message": message})
}
