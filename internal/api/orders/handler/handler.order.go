package ordershdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "logi_track/internal/api/auth/models"
	basehdl "logi_track/internal/api/base/handler"
	ordersdto "logi_track/internal/api/orders/dto"
	models "logi_track/internal/api/orders/models"
	ordersvc "logi_track/internal/api/orders/service"
	"logi_track/internal/common"
)

// OrderHandler xử lý các request liên quan đến đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, ordersdto.OrderCreateInput, ordersdto.OrderUpdateInput]
	orderService *ordersvc.OrderService
}

// NewOrderHandler tạo instance mới của OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Order, ordersdto.OrderCreateInput, ordersdto.OrderUpdateInput](orderService)
	return &OrderHandler{
		BaseHandler:  baseHandler,
		orderService: orderService,
	}, nil
}

// currentUser lấy thông tin user đã xác thực từ context (do AuthMiddleware set)
func currentUser(c fiber.Ctx) (*authmodels.User, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok {
		return nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return &user, nil
}

// HandleCreate tạo đơn hàng mới, người chốt đơn là user đang đăng nhập
func (h *OrderHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input ordersdto.OrderCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.orderService.Create(c.Context(), &input, user)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleToday trả về các đơn trong ngày hiện tại của user đang đăng nhập
func (h *OrderHandler) HandleToday(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orders, err := h.orderService.FindToday(c.Context(), user.ID)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// HandleTodaySummary trả về tổng hợp đơn/kiện/pallet trong ngày của user đang đăng nhập
func (h *OrderHandler) HandleTodaySummary(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		summary, err := h.orderService.TodaySummary(c.Context(), user.ID)
		h.HandleResponse(c, summary, err)
		return nil
	})
}

// HandleUpdate sửa đơn hàng theo ID, chỉ người chốt đơn mới được sửa
func (h *OrderHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var input ordersdto.OrderUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu cập nhật không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objID, _ := primitive.ObjectIDFromHex(id)
		order, err := h.orderService.UpdateOrder(c.Context(), objID, user.ID, &input)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleDelete xóa đơn hàng theo ID, chỉ người chốt đơn mới được xóa
func (h *OrderHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		objID, _ := primitive.ObjectIDFromHex(id)
		err = h.orderService.DeleteOrder(c.Context(), objID, user.ID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleCheckNumber kiểm tra số đơn hàng đã tồn tại chưa, trả về {"exists": bool}
func (h *OrderHandler) HandleCheckNumber(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderNumber, err := parseOrderNumberParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		exists, err := h.orderService.OrderNumberExists(c.Context(), orderNumber)
		h.HandleResponse(c, fiber.Map{"exists": exists}, err)
		return nil
	})
}

// HandleFindByNumber tìm đơn hàng theo số đơn, trả về đơn mới nhất nếu trùng số
func (h *OrderHandler) HandleFindByNumber(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderNumber, err := parseOrderNumberParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.orderService.FindByNumber(c.Context(), orderNumber)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleSearch tìm các đơn có số đơn bắt đầu bằng prefix (query param "prefix")
func (h *OrderHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		prefix := c.Query("prefix")
		if prefix == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu query param 'prefix'",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		if _, err := strconv.ParseInt(prefix, 10, 64); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Prefix phải là chuỗi số",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		orders, err := h.orderService.SearchByNumberPrefix(c.Context(), prefix)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// parseOrderNumberParam parse số đơn hàng từ URI params
func parseOrderNumberParam(c fiber.Ctx) (int64, error) {
	raw := c.Params("orderNumber")
	orderNumber, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderNumber <= 0 {
		return 0, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Số đơn hàng '%s' không hợp lệ, phải là số nguyên dương", raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return orderNumber, nil
}
