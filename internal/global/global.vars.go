package global

import (
	"logi_track/config"
	"logi_track/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Users  string // Tên collection cho người dùng
	Orders string // Tên collection cho đơn hàng
}

// Các biến toàn cục
var Validate *validator.Validate          // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client         // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames CollectionName       // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
