// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	authdto "logi_track/internal/api/auth/dto"
	models "logi_track/internal/api/auth/models"
	basesvc "logi_track/internal/api/base/service"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Login đăng nhập bằng email và mật khẩu.
// Nếu thành công sẽ sinh JWT token mới, cập nhật vào field token (token mới nhất)
// và vào array tokens theo hwid (mỗi thiết bị một token).
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("Login: Sai mật khẩu")
		return nil, common.ErrInvalidCredentials
	}

	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	expiry := time.Duration(global.MongoDB_ServerConfig.JwtExpiryHours) * time.Hour
	token, err := utility.CreateToken(
		global.MongoDB_ServerConfig.JwtSecret,
		user.ID.Hex(),
		strconv.FormatInt(currentTime, 16),
		strconv.Itoa(rdNumber),
		expiry,
	)
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuthToken, "Không thể tạo token", common.StatusInternalServerError, err)
	}

	user.Token = token
	idTokenExist := -1
	for i, t := range user.Tokens {
		if t.Hwid == input.Hwid {
			idTokenExist = i
			break
		}
	}
	if idTokenExist == -1 {
		user.Tokens = append(user.Tokens, models.Token{Hwid: input.Hwid, JwtToken: token})
	} else {
		user.Tokens[idTokenExist].JwtToken = token
	}

	tokenUpdateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  user.Token,
			"tokens": user.Tokens,
		},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, tokenUpdateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "error": err.Error()}).Error("Login: Lỗi khi cập nhật token vào user")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updatedUser.ID.Hex(), "email": updatedUser.Email}).Info("Login: Đăng nhập thành công")
	return &updatedUser, nil
}

// Register tạo tài khoản nhân viên mới với mật khẩu được băm bcrypt.
// Vai trò mặc định là user nếu không chỉ định.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeAuthCredentials, "Email đã được sử dụng", common.StatusConflict, nil)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "email": created.Email, "role": created.Role}).Info("Register: Tạo tài khoản thành công")
	created.Password = ""
	created.Tokens = nil
	return &created, nil
}

// Logout đăng xuất người dùng (xóa token theo hwid)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, input *authdto.UserLogoutInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	newTokens := make([]models.Token, 0)
	for _, t := range user.Tokens {
		if t.Hwid != input.Hwid {
			newTokens = append(newTokens, t)
		}
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": newTokens,
			"token":  "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// BlockUser khóa tài khoản theo email và xóa toàn bộ token đang hoạt động
func (s *UserService) BlockUser(ctx context.Context, input *authdto.BlockUserInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return nil, err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   true,
			"blockNote": input.Note,
			"token":     "",
			"tokens":    []models.Token{},
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": updated.ID.Hex(), "email": updated.Email}).Info("BlockUser: Đã khóa tài khoản")
	return &updated, nil
}

// UnblockUser mở khóa tài khoản theo email
func (s *UserService) UnblockUser(ctx context.Context, input *authdto.UnBlockUserInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return nil, err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   false,
			"blockNote": "",
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": updated.ID.Hex(), "email": updated.Email}).Info("UnblockUser: Đã mở khóa tài khoản")
	return &updated, nil
}

// EnsureAdminAccount đảm bảo tồn tại ít nhất một tài khoản quản trị viên.
// Được gọi khi khởi động server với thông tin từ biến môi trường.
// Không làm gì nếu đã có admin hoặc thiếu thông tin cấu hình.
func (s *UserService) EnsureAdminAccount(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		logrus.Warn("EnsureAdminAccount: Thiếu ADMIN_EMAIL hoặc ADMIN_PASSWORD, bỏ qua bước seed admin")
		return nil
	}

	count, err := s.BaseServiceMongoImpl.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.Register(ctx, &authdto.UserRegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// Trường hợp race với instance khác cùng seed, email đã tồn tại là chấp nhận được
		var customErr *common.Error
		if errors.As(err, &customErr) && customErr.StatusCode == common.StatusConflict {
			return nil
		}
		return err
	}

	logrus.WithFields(logrus.Fields{"email": email}).Info("EnsureAdminAccount: Đã tạo tài khoản quản trị viên mặc định")
	return nil
}
