package rjpath

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePath compiles a path expression into an immutable selector
// tree. The path is always treated as rooted; a leading `$` is
// consumed and `$` anywhere else is a syntax error.
func parsePath(path string, functions map[string]Function) (selector, error) {
	tokens, err := tokenize(path)
	if err != nil {
		return nil, err
	}

	expressions := &expressionParser{functions: functions}
	selectors := []selector{rootSelector{}}
	for i, token := range tokens {
		switch {
		case token == "$":
			if i != 0 {
				return nil, fmt.Errorf("%w: '$' is only valid at the start of a path", ErrSyntax)
			}
		case token == "..":
			selectors = append(selectors, recursiveDescentSelector{})
		case token == "*":
			selectors = append(selectors, wildcardSelector{})
		case strings.HasPrefix(token, "["):
			sel, err := parseBracket(token[1:len(token)-1], expressions)
			if err != nil {
				return nil, err
			}
			selectors = append(selectors, sel)
		default:
			selectors = append(selectors, propertySelector{name: token})
		}
	}

	// A bare "$" collapses to the root selector itself.
	if len(selectors) == 1 {
		return selectors[0], nil
	}
	return compositeSelector{selectors: selectors}, nil
}

// parseBracket classifies bracket content in priority order: filter,
// wildcard, slice, union, index, quoted name, bareword name.
func parseBracket(content string, expressions *expressionParser) (selector, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty bracket selector", ErrSyntax)
	}

	if strings.HasPrefix(content, "?") {
		expr, err := expressions.parseFilter(strings.TrimSpace(content[1:]))
		if err != nil {
			return nil, err
		}
		return filterSelector{expression: expr}, nil
	}

	if content == "*" {
		return wildcardSelector{}, nil
	}

	if strings.Contains(content, ":") {
		return parseSlice(content)
	}

	if parts := splitTopLevel(content, ","); len(parts) > 1 {
		members := make([]selector, 0, len(parts))
		for _, part := range parts {
			member, err := parseUnionMember(part)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		return unionSelector{selectors: members}, nil
	}

	if index, err := strconv.Atoi(content); err == nil {
		return indexSelector{index: index}, nil
	}

	if isQuoted(content) {
		return propertySelector{name: unquote(content)}, nil
	}

	return propertySelector{name: content}, nil
}

// parseUnionMember parses one comma-separated union element as an
// integer index or a possibly quoted property name.
func parseUnionMember(part string) (selector, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return nil, fmt.Errorf("%w: empty union member", ErrSyntax)
	}

	if index, err := strconv.Atoi(part); err == nil {
		return indexSelector{index: index}, nil
	}
	if isQuoted(part) {
		return propertySelector{name: unquote(part)}, nil
	}
	return propertySelector{name: part}, nil
}

// parseSlice parses `start:end:step` with all three parts optional.
// A zero step is a compile error, never seen by the evaluator.
func parseSlice(content string) (selector, error) {
	parts := strings.Split(content, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: too many colons in slice %q", ErrSyntax, content)
	}

	s := sliceSelector{step: 1}

	if v := strings.TrimSpace(parts[0]); v != "" {
		start, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: slice start %q is not an integer", ErrSyntax, v)
		}
		s.start, s.hasStart = start, true
	}

	if len(parts) > 1 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			end, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: slice end %q is not an integer", ErrSyntax, v)
			}
			s.end, s.hasEnd = end, true
		}
	}

	if len(parts) == 3 {
		if v := strings.TrimSpace(parts[2]); v != "" {
			step, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: slice step %q is not an integer", ErrSyntax, v)
			}
			if step == 0 {
				return nil, fmt.Errorf("%w: slice step cannot be zero", ErrSyntax)
			}
			s.step = step
		}
	}

	return s, nil
}
