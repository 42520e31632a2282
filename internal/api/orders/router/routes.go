// Package router đăng ký các route thuộc domain orders.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "logi_track/internal/api/auth/models"
	"logi_track/internal/api/middleware"
	ordershdl "logi_track/internal/api/orders/handler"
	apirouter "logi_track/internal/api/router"
)

// Register đăng ký tất cả route orders lên v1.
// Nhân viên thao tác trên đơn của mình, admin có thêm bộ route tra cứu toàn bộ collection.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := ordershdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware("")
	adminMiddleware := middleware.AuthMiddleware(authmodels.RoleAdmin)

	// Route tĩnh phải đăng ký trước route có param để tránh bị match nhầm
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/today", []fiber.Handler{authMiddleware}, orderHandler.HandleToday)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/today/summary", []fiber.Handler{authMiddleware}, orderHandler.HandleTodaySummary)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/search", []fiber.Handler{authMiddleware}, orderHandler.HandleSearch)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/check/:orderNumber", []fiber.Handler{authMiddleware}, orderHandler.HandleCheckNumber)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/by-number/:orderNumber", []fiber.Handler{authMiddleware}, orderHandler.HandleFindByNumber)

	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/", []fiber.Handler{authMiddleware}, orderHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/:id", []fiber.Handler{authMiddleware}, orderHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "DELETE", "/:id", []fiber.Handler{authMiddleware}, orderHandler.HandleDelete)

	// Danh sách đơn phân trang cho màn hình quản trị
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/", []fiber.Handler{adminMiddleware}, orderHandler.FindWithPagination)

	// Bộ route tra cứu chung (find, count, distinct, exists) cho admin
	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, apirouter.ReadOnlyConfig, authmodels.RoleAdmin)
	return nil
}
