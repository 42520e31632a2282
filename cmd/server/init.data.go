package main

import (
	"context"
	"time"

	authsvc "logi_track/internal/api/auth/service"
	"logi_track/internal/global"
	"logi_track/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định khi server khởi động.
// Hiện tại chỉ gồm bước seed tài khoản admin từ biến môi trường.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	// Seed tài khoản admin mặc định nếu hệ thống chưa có admin nào.
	// Thiếu ADMIN_EMAIL hoặc ADMIN_PASSWORD thì bỏ qua, admin sẽ được tạo thủ công.
	log.Info("🔄 [INIT] Step 1: Ensuring default admin account...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := global.MongoDB_ServerConfig
	if err := userService.EnsureAdminAccount(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.WithError(err).Error("❌ [INIT] Step 1: Failed to ensure admin account")
		log.Warnf("Failed to ensure admin account: %v", err)
	} else {
		log.Info("✅ [INIT] Step 1: Admin account ensured")
	}
}
