package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// stringOr returns the coerced string, or fallback when it is empty.
func stringOr(v any, fallback string) string {
	if s := coerceString(v); s != "" {
		return s
	}
	return fallback
}

func coerceStringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

// coerceFloat accepts numbers and numeric strings such as "75" or "75%".
func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val)
	case int:
		return float64(val), true
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceScore converts a model-supplied score to an int in [0, 100].
// Fractions are truncated; absent or non-numeric values become 0.
func coerceScore(v any) int {
	f, ok := coerceFloat(v)
	if !ok {
		return 0
	}
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	}
	return int(f)
}
