// Package router đăng ký các route thuộc domain auth: System, Auth, Admin.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "logi_track/internal/api/auth/handler"
	models "logi_track/internal/api/auth/models"
	basehdl "logi_track/internal/api/base/handler"
	"logi_track/internal/api/middleware"
	apirouter "logi_track/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, admin) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1, r); err != nil {
		return err
	}
	if err := registerAdminRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	router.Post("/auth/login", userHandler.HandleLogin)
	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateProfile)
	return nil
}

func registerAdminRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	adminMiddleware := middleware.AuthMiddleware(models.RoleAdmin)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/register", []fiber.Handler{adminMiddleware}, userHandler.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/block", []fiber.Handler{adminMiddleware}, userHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/unblock", []fiber.Handler{adminMiddleware}, userHandler.HandleUnblockUser)

	// Danh sách nhân viên cho màn hình quản trị (chỉ đọc)
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig, models.RoleAdmin)
	return nil
}
