package nhl

import "strings"

// Accessors for the opaque feed maps. The NHL web API has gone through
// several shape revisions (top-level vs liveData nesting, renamed player
// id fields, name objects vs plain strings), so callers read every
// concept through an explicit ordered fallback chain instead of trusting
// a single key.

// ExtractString returns the string at key, or "".
func ExtractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// FirstString walks keys in order and returns the first non-blank string value.
func FirstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(ExtractString(m, key)); s != "" {
			return s
		}
	}
	return ""
}

// ExtractMap returns the nested object at key, or an empty map.
func ExtractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// ExtractArray returns the array at key, or an empty slice.
func ExtractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// FirstArray walks keys in order and returns the first non-empty array value.
func FirstArray(m map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		if arr := ExtractArray(m, key); len(arr) > 0 {
			return arr
		}
	}
	return nil
}

// AsNumber coerces a JSON value to float64 if it is numeric.
func AsNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	}
	return 0, false
}

// FirstNumber walks keys in order and returns the first numeric value.
func FirstNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if n, ok := AsNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// FirstID walks keys in order and returns the first positive integer id.
func FirstID(m map[string]interface{}, keys ...string) int64 {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if n, ok := AsNumber(v); ok && n > 0 {
				return int64(n)
			}
		}
	}
	return 0
}

// DefaultName unwraps the feed's localized name objects: either a plain
// string or {"default": "...", "cs": "...", ...}. Falls back to any
// non-blank localized variant.
func DefaultName(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	if d := strings.TrimSpace(ExtractString(m, "default")); d != "" {
		return d
	}
	for _, anyVal := range m {
		if s, ok := anyVal.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
