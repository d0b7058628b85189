package rjpath

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/jacoelho/rjpath/internal/number"
)

// truthy coerces a value to boolean for existence/truthiness filters
// and function-predicate results: non-empty strings, containers with
// members, nonzero numbers and true are truthy; everything else,
// including null, is not.
func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		if f, ok := number.ToFloat64(value); ok {
			return f != 0
		}
		return false
	}
}

// equalValues compares two values structurally, coercing numeric
// representations so 2 == 2.0 == json.Number("2").
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if fa, ok := number.ToFloat64(a); ok {
		fb, ok := number.ToFloat64(b)
		return ok && fa == fb
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !equalValues(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for key, value := range va {
			other, ok := vb[key]
			if !ok || !equalValues(value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// orderValues returns the relative order of two values and whether
// they are comparable at all. Numbers order numerically, strings
// lexically, false sorts before true. Arrays and objects order by size
// first, objects then by sorted keys, finally by member values; this
// is a total ordering extension beyond strict RFC 9535. Mixed-type
// operands are not comparable.
func orderValues(a, b any) (int, bool) {
	if fa, ok := number.ToFloat64(a); ok {
		fb, ok := number.ToFloat64(b)
		if !ok {
			return 0, false
		}
		return cmp.Compare(fa, fb), true
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(va, vb), true
	case bool:
		vb, ok := b.(bool)
		if !ok {
			return 0, false
		}
		return orderBools(va, vb), true
	case []any:
		vb, ok := b.([]any)
		if !ok {
			return 0, false
		}
		return orderArrays(va, vb)
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok {
			return 0, false
		}
		return orderObjects(va, vb)
	default:
		return 0, false
	}
}

func orderBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func orderArrays(a, b []any) (int, bool) {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c, true
	}
	for i := range a {
		c, ok := orderValues(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return 0, true
}

func orderObjects(a, b map[string]any) (int, bool) {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c, true
	}

	keysA := slices.Sorted(maps.Keys(a))
	keysB := slices.Sorted(maps.Keys(b))
	for i := range keysA {
		if c := strings.Compare(keysA[i], keysB[i]); c != 0 {
			return c, true
		}
	}
	for _, key := range keysA {
		c, ok := orderValues(a[key], b[key])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return 0, true
}
