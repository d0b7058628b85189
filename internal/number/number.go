// Package number normalizes the numeric types produced by the JSON and
// YAML decoders so that comparisons see one representation. encoding/json
// yields float64 or json.Number; goccy/go-yaml yields int, uint64 or
// float64 for the same document.
package number

import "encoding/json"

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case int:
		return float64(current), true
	case int32:
		return float64(current), true
	case int64:
		return float64(current), true
	case uint:
		return float64(current), true
	case uint32:
		return float64(current), true
	case uint64:
		return float64(current), true
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether the value carries a numeric type.
func IsNumeric(value any) bool {
	_, ok := ToFloat64(value)
	return ok
}
