// Package ordersvc - service đơn hàng (Order).
package ordersvc

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	authmodels "logi_track/internal/api/auth/models"
	ordersdto "logi_track/internal/api/orders/dto"
	models "logi_track/internal/api/orders/models"
	basesvc "logi_track/internal/api/base/service"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/utility"
)

// searchResultLimit giới hạn số kết quả khi tìm đơn theo prefix
const searchResultLimit = 20

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](orderCollection),
	}, nil
}

// Create tạo đơn hàng mới với người chốt đơn lấy từ phiên đăng nhập.
// Timestamp do server gán tại thời điểm tạo, client không được chỉ định.
func (s *OrderService) Create(ctx context.Context, input *ordersdto.OrderCreateInput, closer *authmodels.User) (*models.Order, error) {
	order := models.Order{
		Timestamp:   time.Now().UTC(),
		OrderNumber: input.OrderNumber,
		Transport:   input.Transport,
		Packer:      input.Packer,
		Closer:      closer.ID,
		CloserName:  closer.Name,
		Packages:    input.Packages,
		IsPallet:    input.IsPallet,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     created.ID.Hex(),
		"order_number": created.OrderNumber,
		"closer":       created.CloserName,
	}).Info("Create: Đã tạo đơn hàng mới")
	return &created, nil
}

// FindToday trả về các đơn trong ngày hiện tại (theo múi giờ kho) của một người chốt đơn,
// sắp xếp mới nhất trước
func (s *OrderService) FindToday(ctx context.Context, closerID primitive.ObjectID) ([]models.Order, error) {
	today := utility.CurrentDay()
	start, end, err := utility.DayWindow(today, today)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"closer":    closerID,
		"timestamp": bson.M{"$gte": start, "$lte": end},
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	orders, err := s.BaseServiceMongoImpl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// TodaySummary tổng hợp nhanh số đơn, số kiện và số pallet trong ngày của một người chốt đơn.
// Đơn pallet không tính vào tổng kiện, thay vào đó đếm riêng số pallet.
func (s *OrderService) TodaySummary(ctx context.Context, closerID primitive.ObjectID) (*ordersdto.OrderTodaySummary, error) {
	orders, err := s.FindToday(ctx, closerID)
	if err != nil {
		return nil, err
	}

	summary := &ordersdto.OrderTodaySummary{}
	for _, o := range orders {
		summary.TotalOrders++
		if o.IsPallet {
			summary.TotalPallets++
		} else {
			summary.TotalPackages += int64(o.Packages)
		}
	}
	return summary, nil
}

// UpdateOrder sửa đơn hàng theo ID. Chỉ người chốt đơn mới được sửa đơn của mình,
// và chỉ các trường orderNumber, transport, packer được phép thay đổi.
func (s *OrderService) UpdateOrder(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, input *ordersdto.OrderUpdateInput) (*models.Order, error) {
	order, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Closer != userID {
		return nil, common.ErrNotOrderOwner
	}

	set := map[string]interface{}{}
	if input.OrderNumber > 0 {
		set["orderNumber"] = input.OrderNumber
	}
	if input.Transport != "" {
		set["transport"] = input.Transport
	}
	if input.Packer != "" {
		set["packer"] = input.Packer
	}
	if len(set) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có trường nào để cập nhật", common.StatusBadRequest, nil)
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOrder xóa đơn hàng theo ID. Chỉ người chốt đơn mới được xóa đơn của mình.
func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	order, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if order.Closer != userID {
		return common.ErrNotOrderOwner
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}

// OrderNumberExists kiểm tra số đơn hàng đã tồn tại hay chưa
func (s *OrderService) OrderNumberExists(ctx context.Context, orderNumber int64) (bool, error) {
	return s.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{"orderNumber": orderNumber})
}

// FindByNumber tìm đơn hàng theo số đơn. Nếu số đơn trùng (đơn được nhập lại),
// trả về đơn mới nhất theo timestamp.
func (s *OrderService) FindByNumber(ctx context.Context, orderNumber int64) (*models.Order, error) {
	opts := mongoopts.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	order, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"orderNumber": orderNumber}, opts)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SearchByNumberPrefix tìm các đơn có số đơn bắt đầu bằng prefix.
// orderNumber lưu dạng số nên phải chuyển sang chuỗi bằng $toString trong pipeline
// trước khi so khớp prefix. Kết quả sắp xếp mới nhất trước, giới hạn searchResultLimit đơn.
func (s *OrderService) SearchByNumberPrefix(ctx context.Context, prefix string) ([]models.Order, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.M{
			"orderNumberStr": bson.M{"$toString": "$orderNumber"},
		}}},
		bson.D{{Key: "$match", Value: bson.M{
			"orderNumberStr": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		bson.D{{Key: "$limit", Value: searchResultLimit}},
		bson.D{{Key: "$project", Value: bson.M{"orderNumberStr": 0}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return orders, nil
}
