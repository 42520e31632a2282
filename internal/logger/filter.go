package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries dựa trên các tiêu chí:
// - Module (ví dụ: auth, orders, stats)
// - Endpoint (ví dụ: /api/v1/orders)
// - Method (GET, POST, PUT, DELETE)
// - Log Type (trace, debug, info, warn, error, fatal)
// Entry bị loại được đánh dấu field "_filtered", AsyncHook sẽ bỏ qua khi ghi.
type FilterHook struct {
	// Các filter sets (map[string]bool để lookup nhanh)
	// Nếu map chứa "*", cho phép tất cả
	allowedModules   map[string]bool
	allowedEndpoints map[string]bool
	allowedMethods   map[string]bool
	allowedLogTypes  map[string]bool

	hasModuleFilter   bool
	hasEndpointFilter bool
	hasMethodFilter   bool
	hasLogTypeFilter  bool

	mu sync.RWMutex
}

// NewFilterHook tạo một filter hook mới từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters cập nhật filters từ config (có thể gọi runtime)
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.hasModuleFilter = !h.allowedModules["*"]

	h.allowedEndpoints = parseFilter(cfg.FilterEndpoints)
	h.hasEndpointFilter = !h.allowedEndpoints["*"]

	h.allowedMethods = parseFilter(cfg.FilterMethods)
	h.hasMethodFilter = !h.allowedMethods["*"]

	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
	h.hasLogTypeFilter = !h.allowedLogTypes["*"]
}

// parseFilter parse filter string dạng "value1,value2" thành map.
// Chuỗi rỗng hoặc "*" nghĩa là cho phép tất cả.
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)

	if filterStr == "" || filterStr == "*" {
		result["*"] = true
		return result
	}

	for _, v := range strings.Split(filterStr, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			// Lowercase để so sánh không phân biệt hoa thường
			result[strings.ToLower(v)] = true
		}
	}

	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị filter bằng field "_filtered" = true.
// Entries không có field tương ứng với filter thì được cho qua.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// Kiểm tra log type filter
	if h.hasLogTypeFilter {
		levelStr := strings.ToLower(entry.Level.String())
		if !h.allowedLogTypes[levelStr] {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	// Kiểm tra module filter
	if h.hasModuleFilter {
		if module, ok := entry.Data["module"].(string); ok && module != "" {
			if !h.allowedModules[strings.ToLower(module)] {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	// Kiểm tra endpoint filter (exact hoặc prefix match)
	if h.hasEndpointFilter {
		endpoint, ok := entry.Data["endpoint"].(string)
		if !ok || endpoint == "" {
			endpoint, ok = entry.Data["path"].(string)
		}
		if ok && endpoint != "" {
			endpointLower := strings.ToLower(endpoint)
			matched := false
			for allowedEndpoint := range h.allowedEndpoints {
				if endpointLower == allowedEndpoint || strings.HasPrefix(endpointLower, allowedEndpoint) {
					matched = true
					break
				}
			}
			if !matched {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	// Kiểm tra method filter
	if h.hasMethodFilter {
		if method, ok := entry.Data["method"].(string); ok && method != "" {
			if !h.allowedMethods[strings.ToLower(method)] {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	return nil
}
