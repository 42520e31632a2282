package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "logi_track/internal/api/auth/dto"
	models "logi_track/internal/api/auth/models"
	authsvc "logi_track/internal/api/auth/service"
	basehdl "logi_track/internal/api/base/handler"
	basesvc "logi_track/internal/api/base/service"
	"logi_track/internal/common"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler: baseHandler,
		userService: userService,
	}, nil
}

// HandleLogin xử lý đăng nhập bằng email và mật khẩu
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	var input authdto.UserLoginInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	user, err := h.userService.Login(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	user.Password = ""
	user.Tokens = nil
	h.HandleResponse(c, user, nil)
	return nil
}

// HandleRegister tạo tài khoản nhân viên mới (chỉ admin)
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	var input authdto.UserRegisterInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	user, err := h.userService.Register(c.Context(), &input)
	h.HandleResponse(c, user, err)
	return nil
}

// HandleLogout xử lý đăng xuất người dùng
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	var input authdto.UserLogoutInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	err = h.userService.Logout(c.Context(), objID, &input)
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleGetProfile lấy thông tin profile của người dùng
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	user, err := h.userService.BaseServiceMongoImpl.FindOneById(c.Context(), objID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user.Password = ""
	user.Token = ""
	user.Tokens = nil
	h.HandleResponse(c, user, nil)
	return nil
}

// HandleUpdateProfile cập nhật thông tin profile
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	var input authdto.UserChangeInfoInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	update := &basesvc.UpdateData{Set: map[string]interface{}{"name": input.Name}}
	updatedUser, err := h.userService.BaseServiceMongoImpl.UpdateById(c.Context(), objID, update)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	updatedUser.Password = ""
	updatedUser.Token = ""
	updatedUser.Tokens = nil
	h.HandleResponse(c, updatedUser, nil)
	return nil
}

// HandleBlockUser khóa tài khoản người dùng theo email (chỉ admin)
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	var input authdto.BlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user, err := h.userService.BlockUser(c.Context(), &input)
	h.HandleResponse(c, user, err)
	return nil
}

// HandleUnblockUser mở khóa tài khoản người dùng theo email (chỉ admin)
func (h *UserHandler) HandleUnblockUser(c fiber.Ctx) error {
	var input authdto.UnBlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user, err := h.userService.UnblockUser(c.Context(), &input)
	h.HandleResponse(c, user, err)
	return nil
}
