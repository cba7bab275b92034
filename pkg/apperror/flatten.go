package apperror

import (
	"fmt"
	"strings"
)

// Flatten reduces a nested error detail to either a string or a map whose
// leaves are strings or further maps.
//
// A list whose first element is a map is merged into a single map; any other
// list is joined with spaces.
func Flatten(detail any) any {
	switch d := detail.(type) {
	case nil:
		return ""
	case string:
		return d
	case error:
		return d.Error()
	case FieldErrors:
		return flattenMap(d)
	case map[string]any:
		return flattenMap(d)
	case map[string]string:
		out := make(map[string]any, len(d))
		for k, v := range d {
			out[k] = v
		}
		return out
	case []string:
		return strings.Join(d, " ")
	case []FieldErrors:
		out := make(map[string]any)
		for _, m := range d {
			for k, v := range m {
				out[k] = Flatten(v)
			}
		}
		return out
	case []any:
		return flattenList(d)
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprint(d)
	}
}

func flattenMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Flatten(v)
	}
	return out
}

func flattenList(items []any) any {
	if len(items) == 0 {
		return ""
	}
	if _, ok := asMap(items[0]); ok {
		out := make(map[string]any)
		for _, item := range items {
			m, ok := asMap(item)
			if !ok {
				continue
			}
			for k, v := range m {
				out[k] = Flatten(v)
			}
		}
		return out
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, fmt.Sprint(Flatten(item)))
	}
	return strings.Join(parts, " ")
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case FieldErrors:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
