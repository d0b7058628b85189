package rjpath

import (
	"fmt"
	"maps"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Function is a named pure filter function: it receives the evaluated
// argument values and returns a single result. Returning an error
// aborts the evaluation; argument-count violations are contract
// violations, not soft failures.
type Function func(args []any) (any, error)

// newFunctionTable seeds the per-query registry with the built-ins and
// layers user registrations on top. User functions may shadow
// built-ins.
func newFunctionTable(o *options) map[string]Function {
	table := map[string]Function{
		"length": lengthFunction,
		"count":  countFunction,
		"match":  matchFunction(o.matchMode),
		"search": searchFunction,
		"value":  valueFunction,
	}
	maps.Copy(table, o.functions)
	return table
}

// lengthFunction returns the character count of a string or the member
// count of an array/object, and 0 for anything else.
func lengthFunction(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expects 1 argument, got %d", len(args))
	}

	switch v := args[0].(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case []any:
		return float64(len(v)), nil
	case map[string]any:
		return float64(len(v)), nil
	default:
		return float64(0), nil
	}
}

// countFunction returns the member count of an array/object and 1 for
// any other value.
func countFunction(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expects 1 argument, got %d", len(args))
	}

	switch v := args[0].(type) {
	case []any:
		return float64(len(v)), nil
	case map[string]any:
		return float64(len(v)), nil
	default:
		return float64(1), nil
	}
}

// matchFunction reports whether a subject string matches a regular
// expression pattern. MatchEntire anchors the pattern to the whole
// subject; MatchContains accepts a match anywhere within it.
func matchFunction(mode MatchMode) Function {
	return func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("expects 2 arguments, got %d", len(args))
		}

		subject, ok := args[0].(string)
		if !ok {
			return false, nil
		}
		pattern, ok := args[1].(string)
		if !ok {
			return false, nil
		}

		if mode == MatchEntire {
			pattern = "^(?:" + pattern + ")$"
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %v", pattern, err)
		}
		return re.MatchString(subject), nil
	}
}

// searchFunction reports substring containment.
func searchFunction(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expects 2 arguments, got %d", len(args))
	}

	subject, ok := args[0].(string)
	if !ok {
		return false, nil
	}
	substring, ok := args[1].(string)
	if !ok {
		return false, nil
	}
	return strings.Contains(subject, substring), nil
}

// valueFunction is the identity; it forces value-context evaluation of
// its argument inside a filter.
func valueFunction(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expects 1 argument, got %d", len(args))
	}
	return args[0], nil
}
