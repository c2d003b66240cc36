// Package conv 提供类型转换、map/slice 转换等泛型工具，用于简化各模块中的重复逻辑。
package conv

import (
	"strconv"
	"strings"
)

// ParseFloat 解析 CSV 单元格为 float64；空白或非法值返回 fallback。
func ParseFloat(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

// ParseBool 解析 CSV 单元格为 bool。
// 接受 true/false、1/0、yes/no（大小写不敏感）；其他值视为 false。
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "t":
		return true
	default:
		return false
	}
}

// SliceAnyToString 将 []any 转为 []string，忽略非字符串元素；输入不是 []any 时返回 nil。
func SliceAnyToString(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
