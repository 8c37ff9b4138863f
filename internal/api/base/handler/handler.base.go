package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	basesvc "email_marketing/internal/api/base/service"
	"email_marketing/internal/common"
	"email_marketing/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình validate filter từ query string
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng CRUD cơ bản.
// Struct này sử dụng Generic Type để có thể tái sử dụng cho nhiều loại model khác nhau.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service xử lý logic nghiệp vụ với MongoDB
	filterOptions FilterOptions               // Cấu hình validate filter
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
			},
			MaxFields: 10,
		},
	}
}

// validateInput thực hiện validate dữ liệu đầu vào bằng validator toàn cục
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Validate chi tiết input
	if err := h.validateInput(input); err != nil {
		return err
	}

	return nil
}

// processFilter xử lý và validate filter từ request
func (h *BaseHandler[T, CreateInput, UpdateInput]) processFilter(c fiber.Ctx) (map[string]interface{}, error) {
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

	// Normalize filter: chuyển đổi các string ObjectId thành ObjectID
	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// normalizeFilter chuyển đổi các string có format ObjectId thành ObjectID trong filter.
// Hỗ trợ các trường có tên kết thúc bằng "Id" hoặc "ID" và trường "_id".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}

	normalized := make(map[string]interface{})
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := field == "_id" || (strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2)

		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}

	return normalized
}

// normalizeFilterValue chuyển đổi giá trị trong filter, hỗ trợ nested structures
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	if value == nil {
		return value
	}

	// Hỗ trợ MongoDB Extended JSON format: {"$oid": "..."}
	if mapValue, ok := value.(map[string]interface{}); ok {
		if oidValue, hasOid := mapValue["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok && primitive.IsValidObjectID(oidStr) {
				if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
					return objID
				}
			}
			return value
		}
	}

	// Nếu là string và field là ID field, thử chuyển đổi thành ObjectID
	if strValue, ok := value.(string); ok && isIDField {
		if primitive.IsValidObjectID(strValue) {
			if objID, err := primitive.ObjectIDFromHex(strValue); err == nil {
				return objID
			}
		}
		return strValue
	}

	// Nếu là mảng, xử lý từng phần tử
	if arrValue, ok := value.([]interface{}); ok {
		normalizedArr := make([]interface{}, len(arrValue))
		for i, item := range arrValue {
			normalizedArr[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalizedArr
	}

	// Nếu là map (cho các operator như $in, $nin, $eq), xử lý đệ quy
	if mapValue, ok := value.(map[string]interface{}); ok {
		normalizedMap := make(map[string]interface{})
		for key, val := range mapValue {
			normalizedMap[key] = h.normalizeFilterValue(val, isIDField)
		}
		return normalizedMap
	}

	return value
}

// validateFilter kiểm tra tính hợp lệ của filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	maxFields := h.filterOptions.MaxFields
	if maxFields == 0 {
		maxFields = 10
	}

	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter vượt quá số lượng trường cho phép. Tối đa %d trường, hiện tại có %d trường.", maxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		// Kiểm tra field có bị cấm không
		if slices.Contains(h.filterOptions.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật.", field),
				common.StatusBadRequest,
				nil,
			)
		}

		// Kiểm tra operator nếu value là map
		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !slices.Contains(h.filterOptions.AllowedOperators, op) {
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

// mongoOptionsInput cấu trúc options parse từ query string
type mongoOptionsInput struct {
	Sort       map[string]interface{} `json:"sort"`
	Projection map[string]interface{} `json:"projection"`
	Limit      *int64                 `json:"limit"`
	Skip       *int64                 `json:"skip"`
}

// processFindOptions xử lý options từ query string cho thao tác Find
func (h *BaseHandler[T, CreateInput, UpdateInput]) processFindOptions(c fiber.Ctx) (*mongoopts.FindOptions, error) {
	raw, err := h.parseMongoOptions(c)
	if err != nil {
		return nil, err
	}

	opts := mongoopts.Find()
	if raw.Sort != nil {
		opts.SetSort(raw.Sort)
	}
	if raw.Projection != nil {
		opts.SetProjection(raw.Projection)
	}
	if raw.Limit != nil {
		opts.SetLimit(*raw.Limit)
	}
	if raw.Skip != nil {
		opts.SetSkip(*raw.Skip)
	}
	return opts, nil
}

// processFindOneOptions xử lý options từ query string cho thao tác FindOne
func (h *BaseHandler[T, CreateInput, UpdateInput]) processFindOneOptions(c fiber.Ctx) (*mongoopts.FindOneOptions, error) {
	raw, err := h.parseMongoOptions(c)
	if err != nil {
		return nil, err
	}

	opts := mongoopts.FindOne()
	if raw.Sort != nil {
		opts.SetSort(raw.Sort)
	}
	if raw.Projection != nil {
		opts.SetProjection(raw.Projection)
	}
	return opts, nil
}

// parseMongoOptions parse options JSON từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) parseMongoOptions(c fiber.Ctx) (*mongoOptionsInput, error) {
	optionsStr := c.Query("options", "{}")
	var raw mongoOptionsInput
	if err := json.Unmarshal([]byte(optionsStr), &raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return &raw, nil
}

// ParsePagination lấy page và limit từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := int64(1)
	limit := int64(10)

	if pageStr := c.Query("page", ""); pageStr != "" {
		if p, err := strconv.ParseInt(pageStr, 10, 64); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit", ""); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 {
			limit = l
		}
	}

	return page, limit
}

// GetIDFromContext lấy ID từ URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// transformConfig cấu hình parse từ transform tag
type transformConfig struct {
	Kind     string // loại transform: objectID
	Optional bool   // bỏ qua lỗi nếu không transform được
	MapTo    string // tên field target trong Model (mặc định: cùng tên)
}

// parseTransformTag parse transform tag: "objectID", "objectID,optional", "objectID,map:FieldName"
func parseTransformTag(tag string) transformConfig {
	cfg := transformConfig{}
	for i, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case i == 0:
			cfg.Kind = part
		case part == "optional":
			cfg.Optional = true
		case strings.HasPrefix(part, "map:"):
			cfg.MapTo = strings.TrimPrefix(part, "map:")
		}
	}
	return cfg
}

// transformCreateInputToModel chuyển DTO (CreateInput) sang Model bằng reflection.
// Field cùng tên, type tương thích sẽ được copy trực tiếp.
// Field có tag `transform:"objectID"` sẽ được convert từ hex string sang primitive.ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) transformCreateInputToModel(input *CreateInput) (*T, error) {
	model := new(T)

	inputVal := reflect.ValueOf(input).Elem()
	if inputVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("CreateInput phải là struct")
	}

	modelVal := reflect.ValueOf(model).Elem()
	if modelVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("Model phải là struct")
	}

	inputType := inputVal.Type()

	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)

		if !inputField.CanInterface() {
			continue
		}

		targetFieldName := inputFieldType.Name
		transformTag := inputFieldType.Tag.Get("transform")

		if transformTag != "" {
			cfg := parseTransformTag(transformTag)
			if cfg.MapTo != "" {
				targetFieldName = cfg.MapTo
			}

			modelFieldVal := modelVal.FieldByName(targetFieldName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				if cfg.Optional {
					continue
				}
				return nil, fmt.Errorf("không tìm thấy field '%s' trong Model (map từ field '%s' trong DTO)", targetFieldName, inputFieldType.Name)
			}

			if cfg.Kind == "objectID" {
				strValue, ok := inputField.Interface().(string)
				if !ok {
					return nil, fmt.Errorf("field '%s' với transform objectID phải là string", inputFieldType.Name)
				}
				if strValue == "" {
					if cfg.Optional {
						continue
					}
					return nil, fmt.Errorf("field '%s' không được để trống", inputFieldType.Name)
				}
				objID, err := primitive.ObjectIDFromHex(strValue)
				if err != nil {
					if cfg.Optional {
						continue
					}
					return nil, fmt.Errorf("field '%s' không đúng định dạng ObjectID: %w", inputFieldType.Name, err)
				}
				modelFieldVal.Set(reflect.ValueOf(objID))
				continue
			}

			// Tag chỉ dùng map: copy trực tiếp sang field target
			inputValReflect := reflect.ValueOf(inputField.Interface())
			if inputValReflect.Type().AssignableTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect)
			} else if inputValReflect.Type().ConvertibleTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect.Convert(modelFieldVal.Type()))
			}
			continue
		}

		// Không có transform tag → copy trực tiếp nếu field cùng tên và type tương thích
		modelFieldVal := modelVal.FieldByName(targetFieldName)
		if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
			continue
		}

		inputValReflect := reflect.ValueOf(inputField.Interface())
		if inputValReflect.Type().AssignableTo(modelFieldVal.Type()) {
			modelFieldVal.Set(inputValReflect)
		} else if inputValReflect.Type().ConvertibleTo(modelFieldVal.Type()) {
			modelFieldVal.Set(inputValReflect.Convert(modelFieldVal.Type()))
		}
	}

	return model, nil
}
