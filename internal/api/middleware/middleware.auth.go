package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	models "logi_track/internal/api/auth/models"
	authsvc "logi_track/internal/api/auth/service"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/logger"
	"logi_track/internal/utility"
)

// AuthManager quản lý xác thực người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AuthManager{
		UserCRUD: userService,
	}, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// requireRole là vai trò tối thiểu để truy cập route:
// - "" chỉ cần xác thực, không yêu cầu vai trò cụ thể
// - models.RoleAdmin chỉ quản trị viên mới được truy cập
func AuthMiddleware(requireRole string) fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Xác thực chữ ký và hạn của token trước khi truy vấn database.
		// Token hết hạn bị từ chối kể cả khi vẫn còn lưu trong document user.
		if _, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				HandleErrorResponse(c, common.ErrTokenExpired)
			} else {
				HandleErrorResponse(c, common.ErrTokenInvalid)
			}
			return nil
		}

		// Tìm user có token
		// Ưu tiên query field "token" (token mới nhất) trước vì nó được cập nhật mỗi lần login
		// Nếu không tìm thấy, query trong array "tokens" (tokens theo hwid)
		var user models.User
		var err error

		user, err = authManager.UserCRUD.FindOne(context.Background(), bson.M{"token": token}, nil)
		if err != nil {
			user, err = authManager.UserCRUD.FindOne(context.Background(), bson.M{"tokens.jwtToken": token}, nil)
		}

		if err != nil {
			// Chỉ log khi không tìm thấy token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		// Nếu không yêu cầu vai trò cụ thể, cho phép truy cập ngay
		if requireRole == "" {
			return c.Next()
		}

		// Kiểm tra vai trò của user
		if requireRole == models.RoleAdmin && !user.IsAdmin() {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":    user.ID.Hex(),
				"user_email": user.Email,
				"role":       user.Role,
				"path":       c.Path(),
			}).Warn("❌ [AUTH] User does not have admin role")
			HandleErrorResponse(c, common.ErrAdminOnly)
			return nil
		}

		return c.Next()
	}
}
