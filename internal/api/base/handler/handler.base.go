package basehdl

// Package basehdl cung cấp BaseHandler generic cho các handler CRUD.
// Package này chứa các tiện ích parse/validate request và chuyển đổi query string sang MongoDB options.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "logi_track/internal/api/base/service"
	"logi_track/internal/common"
	"logi_track/internal/global"
	"logi_track/internal/utility"
)

// FilterOptions cấu hình validate filter từ query string
type FilterOptions struct {
	DeniedFields     []string // Danh sách các trường không được phép filter (bảo mật)
	AllowedOperators []string // Danh sách các toán tử MongoDB được phép
	MaxFields        int      // Số lượng trường tối đa trong một filter
}

// BaseHandler xử lý request HTTP cơ bản với 3 kiểu generic:
// - T: Model chính (lưu trong DB)
// - CreateInput: DTO nhận từ request body khi tạo mới
// - UpdateInput: DTO nhận từ request body khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler tạo một instance mới của BaseHandler với filter options mặc định
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: service,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists",
			},
			MaxFields: 10,
		},
	}
}

// ValidateInput validate input sử dụng struct tag `validate` (required, oneof, min, max, ...)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu đầu vào không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ParseRequestBody parse request body thành struct với json.Decoder.
// Sử dụng UseNumber để tránh mất precision với các số lớn (ví dụ: orderNumber).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return err
	}
	return nil
}

// ParseRequestParams parse URI params thành struct và validate
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, params interface{}) error {
	if err := c.Bind().URI(params); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Tham số trên URL không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	if global.Validate != nil {
		if err := global.Validate.Struct(params); err != nil {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Tham số trên URL không hợp lệ: %v", err),
				common.StatusBadRequest,
				err,
			)
		}
	}
	return nil
}

// TransformCreateInputToModel chuyển DTO CreateInput sang Model T.
// Chuyển đổi qua JSON round-trip, các field được map theo json tag.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	return transformInput[T](input)
}

// TransformUpdateInputToModel chuyển DTO UpdateInput sang Model T
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	return transformInput[T](input)
}

func transformInput[T any](input interface{}) (*T, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var model T
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// ProcessFilter parse và validate filter từ query string.
// Filter được truyền dưới dạng JSON, ví dụ: {"packer": "Alexis", "packages": {"$gte": 2}}
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (bson.M, error) {
	var filter map[string]interface{}
	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	normalized := h.normalizeFilter(filter)

	if err := h.validateFilter(normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}

// normalizeFilter chuẩn hóa filter: chuyển các giá trị ObjectID dạng string sang primitive.ObjectID
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) bson.M {
	normalized := bson.M{}
	for key, value := range filter {
		normalized[key] = h.normalizeFilterValue(key, value)
	}
	return normalized
}

// normalizeFilterValue chuẩn hóa một giá trị trong filter (đệ quy cho map và array)
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(key string, value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		// Các trường kết thúc bằng Id (hoặc _id) chứa ObjectID dạng hex string
		if (strings.HasSuffix(key, "Id") || key == "_id") && primitive.IsValidObjectID(v) {
			return utility.String2ObjectID(v)
		}
		return v
	case map[string]interface{}:
		// Extended JSON: {"$oid": "..."}
		if oidStr, ok := v["$oid"].(string); ok && primitive.IsValidObjectID(oidStr) {
			return utility.String2ObjectID(oidStr)
		}
		// Toán tử lồng nhau: {"$in": [...]}, {"$gte": ...}
		nested := bson.M{}
		for op, opValue := range v {
			nested[op] = h.normalizeFilterValue(key, opValue)
		}
		return nested
	case []interface{}:
		converted := make([]interface{}, len(v))
		for i, item := range v {
			converted[i] = h.normalizeFilterValue(key, item)
		}
		return converted
	default:
		return v
	}
}

// validateFilter kiểm tra filter có hợp lệ không: trường bị cấm, toán tử được phép, số lượng trường
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter bson.M) error {
	if h.filterOptions.MaxFields > 0 && len(filter) > h.filterOptions.MaxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter chứa quá nhiều trường (%d), tối đa cho phép là %d", len(filter), h.filterOptions.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(h.filterOptions.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if nested, ok := value.(bson.M); ok {
			for op := range nested {
				if !strings.HasPrefix(op, "$") {
					continue
				}
				if !utility.Contains(h.filterOptions.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng. Các toán tử được phép: %v", op, h.filterOptions.AllowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// processMongoOptions xử lý options từ query string và chuyển đổi sang MongoDB options.
// Ví dụ options: {"projection": {"field": 1}, "sort": {"field": -1}, "limit": 10, "skip": 0}
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị options nhận được: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if _, ok := rawOptions["sort"].(map[string]interface{}); ok {
			opts.SetSort(parseSortWithOrder(optionsStr))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if _, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(parseSortWithOrder(optionsStr))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// parseSortWithOrder parse phần sort từ JSON string gốc để giữ nguyên thứ tự các key.
// Map của Go không giữ thứ tự nên phải parse lại bằng json.Decoder với Token().
func parseSortWithOrder(optionsJSON string) bson.D {
	sortBson := bson.D{}

	var tempOptions map[string]json.RawMessage
	if err := json.Unmarshal([]byte(optionsJSON), &tempOptions); err != nil {
		return sortBson
	}
	sortRaw, ok := tempOptions["sort"]
	if !ok {
		return sortBson
	}

	decoder := json.NewDecoder(bytes.NewReader(sortRaw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return sortBson
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}

		valueToken, err := decoder.Token()
		if err != nil {
			break
		}

		var sortValue int
		switch v := valueToken.(type) {
		case json.Number:
			intVal, err := v.Int64()
			if err != nil {
				continue
			}
			sortValue = int(intVal)
		case float64:
			sortValue = int(v)
		default:
			continue
		}

		// Chỉ chấp nhận 1 (tăng dần) hoặc -1 (giảm dần)
		if sortValue != 1 && sortValue != -1 {
			continue
		}

		sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
	}

	return sortBson
}

// validateMongoOptions kiểm tra tính hợp lệ của các options từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}

	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Các options được phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(h.filterOptions.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(h.filterOptions.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong sort vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Giá trị sort cho trường '%s' phải là 1 (tăng dần) hoặc -1 (giảm dần), giá trị hiện tại: %v", field, value),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị limit phải lớn hơn 0",
				common.StatusBadRequest,
				nil,
			)
		}
		if limit > 1000 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị limit không được vượt quá 1000 để đảm bảo hiệu năng hệ thống",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if skip, ok := options["skip"].(float64); ok {
		if skip < 0 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị skip không được âm",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	return nil
}

// parsePagination parse page và limit từ query string, đảm bảo giá trị hợp lệ
func parsePagination(c fiber.Ctx) (page int64, limit int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}

	return page, limit
}

// nonZeroFieldsToSet chuyển model sang map và chỉ giữ các field non-zero cho $set.
// Dùng cho partial update: field không có trong input sẽ không bị ghi đè.
func nonZeroFieldsToSet(model interface{}) (map[string]interface{}, error) {
	modelMap, err := utility.ToMap(model)
	if err != nil {
		return nil, err
	}
	set := make(map[string]interface{})
	for k, v := range modelMap {
		if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
			set[k] = v
		}
	}
	return set, nil
}
