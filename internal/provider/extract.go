package provider

import (
	"math"
	"strconv"
	"strings"
)

// ExtractValue normalizes a stat value from the shapes the upstream API uses.
//
// Yahoo returns stat values as strings ("0.473", "112", "-" before a game is
// played, "" for unset). Decoded JSON numbers and nested {"value": ...}
// objects are accepted too.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return finite(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "-" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
		return 0, false
	case map[string]interface{}:
		for _, key := range []string{"value", "total"} {
			if inner, exists := v[key]; exists && inner != nil {
				return ExtractValue(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
