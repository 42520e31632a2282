// Package router đăng ký các route thuộc domain stats.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "logi_track/internal/api/auth/models"
	"logi_track/internal/api/middleware"
	apirouter "logi_track/internal/api/router"
	statshdl "logi_track/internal/api/stats/handler"
)

// Register đăng ký route stats lên v1. Truy vấn thống kê chỉ dành cho quản trị viên.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	statsHandler, err := statshdl.NewStatsHandler()
	if err != nil {
		return fmt.Errorf("failed to create stats handler: %w", err)
	}

	adminMiddleware := middleware.AuthMiddleware(authmodels.RoleAdmin)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "POST", "/query", []fiber.Handler{adminMiddleware}, statsHandler.HandleStatsQuery)
	return nil
}
