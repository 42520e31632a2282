package basehdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"logi_track/internal/common"
)

type sampleModel struct {
	Name     string `json:"name" bson:"name"`
	Packages int    `json:"packages" bson:"packages"`
	IsPallet bool   `json:"isPallet" bson:"isPallet"`
}

type sampleCreateInput struct {
	Name     string `json:"name"`
	Packages int    `json:"packages"`
	IsPallet bool   `json:"isPallet"`
}

func newTestHandler() *BaseHandler[sampleModel, sampleCreateInput, sampleCreateInput] {
	return NewBaseHandler[sampleModel, sampleCreateInput, sampleCreateInput](nil)
}

func TestTransformCreateInputToModel(t *testing.T) {
	h := newTestHandler()
	input := &sampleCreateInput{Name: "Alexis", Packages: 3, IsPallet: true}

	model, err := h.TransformCreateInputToModel(input)
	assert.NoError(t, err)
	assert.Equal(t, "Alexis", model.Name)
	assert.Equal(t, 3, model.Packages)
	assert.True(t, model.IsPallet)
}

func TestNormalizeFilter(t *testing.T) {
	h := newTestHandler()
	hexID := primitive.NewObjectID().Hex()

	t.Run("Trường kết thúc bằng Id được chuyển sang ObjectID", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{"closerId": hexID})
		oid, ok := got["closerId"].(primitive.ObjectID)
		assert.True(t, ok)
		assert.Equal(t, hexID, oid.Hex())
	})

	t.Run("Trường _id được chuyển sang ObjectID", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{"_id": hexID})
		_, ok := got["_id"].(primitive.ObjectID)
		assert.True(t, ok)
	})

	t.Run("Hex không hợp lệ giữ nguyên string", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{"closerId": "not-a-hex"})
		assert.Equal(t, "not-a-hex", got["closerId"])
	})

	t.Run("Trường thường không bị chuyển đổi", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{"packer": hexID})
		assert.Equal(t, hexID, got["packer"])
	})

	t.Run("Extended JSON $oid", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{
			"closer": map[string]interface{}{"$oid": hexID},
		})
		oid, ok := got["closer"].(primitive.ObjectID)
		assert.True(t, ok)
		assert.Equal(t, hexID, oid.Hex())
	})

	t.Run("Toán tử $in với mảng ObjectID", func(t *testing.T) {
		got := h.normalizeFilter(map[string]interface{}{
			"closerId": map[string]interface{}{"$in": []interface{}{hexID}},
		})
		nested, ok := got["closerId"].(bson.M)
		assert.True(t, ok)
		arr, ok := nested["$in"].([]interface{})
		assert.True(t, ok)
		_, ok = arr[0].(primitive.ObjectID)
		assert.True(t, ok)
	})
}

func TestValidateFilter(t *testing.T) {
	h := newTestHandler()

	t.Run("Filter hợp lệ", func(t *testing.T) {
		err := h.validateFilter(bson.M{
			"packer":   "Alexis",
			"packages": bson.M{"$gte": 2},
		})
		assert.NoError(t, err)
	})

	t.Run("Trường bị cấm", func(t *testing.T) {
		err := h.validateFilter(bson.M{"password": "x"})
		var customErr *common.Error
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Toán tử không được phép", func(t *testing.T) {
		err := h.validateFilter(bson.M{"packer": bson.M{"$regex": "^A"}})
		assert.Error(t, err)
	})

	t.Run("Quá nhiều trường", func(t *testing.T) {
		filter := bson.M{}
		for i := 0; i < 11; i++ {
			filter[string(rune('a'+i))] = i
		}
		err := h.validateFilter(filter)
		assert.Error(t, err)
	})
}

func TestParseSortWithOrder(t *testing.T) {
	t.Run("Giữ nguyên thứ tự các key", func(t *testing.T) {
		got := parseSortWithOrder(`{"sort": {"timestamp": -1, "orderNumber": 1, "packer": 1}}`)
		assert.Equal(t, bson.D{
			{Key: "timestamp", Value: -1},
			{Key: "orderNumber", Value: 1},
			{Key: "packer", Value: 1},
		}, got)
	})

	t.Run("Bỏ qua giá trị sort không hợp lệ", func(t *testing.T) {
		got := parseSortWithOrder(`{"sort": {"timestamp": -1, "packer": 5, "orderNumber": "asc"}}`)
		assert.Equal(t, bson.D{{Key: "timestamp", Value: -1}}, got)
	})

	t.Run("Không có sort trả về rỗng", func(t *testing.T) {
		got := parseSortWithOrder(`{"limit": 10}`)
		assert.Empty(t, got)
	})

	t.Run("JSON hỏng trả về rỗng", func(t *testing.T) {
		got := parseSortWithOrder(`{bad json`)
		assert.Empty(t, got)
	})
}

func TestValidateMongoOptions(t *testing.T) {
	h := newTestHandler()

	t.Run("Options hợp lệ", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{
			"projection": map[string]interface{}{"packer": float64(1)},
			"sort":       map[string]interface{}{"timestamp": float64(-1)},
			"limit":      float64(10),
			"skip":       float64(0),
		})
		assert.NoError(t, err)
	})

	t.Run("Option không được hỗ trợ", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{"hint": "x"})
		assert.Error(t, err)
	})

	t.Run("Limit vượt quá 1000", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{"limit": float64(1001)})
		assert.Error(t, err)
	})

	t.Run("Limit bằng 0", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{"limit": float64(0)})
		assert.Error(t, err)
	})

	t.Run("Skip âm", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{"skip": float64(-1)})
		assert.Error(t, err)
	})

	t.Run("Sort với giá trị khác 1 và -1", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{
			"sort": map[string]interface{}{"timestamp": float64(2)},
		})
		assert.Error(t, err)
	})

	t.Run("Projection trường bị cấm", func(t *testing.T) {
		err := h.validateMongoOptions(map[string]interface{}{
			"projection": map[string]interface{}{"password": float64(1)},
		})
		assert.Error(t, err)
	})
}

func TestNonZeroFieldsToSet(t *testing.T) {
	t.Run("Chỉ giữ các field non-zero", func(t *testing.T) {
		set, err := nonZeroFieldsToSet(&sampleModel{Name: "Alexis"})
		assert.NoError(t, err)
		assert.Equal(t, "Alexis", set["name"])
		_, hasPackages := set["packages"]
		assert.False(t, hasPackages)
		_, hasPallet := set["isPallet"]
		assert.False(t, hasPallet)
	})

	t.Run("Model rỗng trả về map rỗng", func(t *testing.T) {
		set, err := nonZeroFieldsToSet(&sampleModel{})
		assert.NoError(t, err)
		assert.Empty(t, set)
	})
}
