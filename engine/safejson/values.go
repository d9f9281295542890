package safejson

import (
	"encoding/json"
	"fmt"
	"math"
)

// Object is a decoded JSON/YAML mapping.
type Object = map[string]any

// AsObject reports whether v is a mapping.
func AsObject(v any) (Object, bool) {
	o, ok := v.(map[string]any)
	return o, ok
}

// AsList reports whether v is a sequence.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// AsString reports whether v is a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool reports whether v is a boolean.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsInt accepts integral numbers only. Booleans are not numbers.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// AsFloat accepts any number.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// TypeName is used in diagnostics.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "str"
	case bool:
		return "bool"
	}
	if _, ok := AsInt(v); ok {
		return "int"
	}
	if _, ok := AsFloat(v); ok {
		return "float"
	}
	return fmt.Sprintf("%T", v)
}
