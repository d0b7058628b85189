package rjpath

import (
	"fmt"
	"strings"
)

// tokenize splits a path expression into raw tokens: "$", "..", "*",
// whole bracket groups (brackets included), and bareword names. Dots
// outside brackets and quotes are pure separators and emit nothing. A
// bracket group is flushed only when its nesting depth returns to
// zero, so filter predicates containing sub-indexing stay one token.
func tokenize(path string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   byte
		depth   int
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	i := 0
	if strings.HasPrefix(path, "$") {
		tokens = append(tokens, "$")
		i = 1
	}

	for ; i < len(path); i++ {
		c := path[i]

		// A backslash escapes the following character irrespective of
		// context. Inside brackets or quotes the raw escape is kept
		// for the downstream parsers to resolve.
		if c == '\\' {
			if depth > 0 || quote != 0 {
				current.WriteByte(c)
			}
			if i+1 < len(path) {
				i++
				current.WriteByte(path[i])
			}
			continue
		}

		if quote != 0 {
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		if c == '\'' || c == '"' {
			quote = c
			current.WriteByte(c)
			continue
		}

		if depth > 0 {
			switch c {
			case '[':
				depth++
			case ']':
				depth--
			}
			current.WriteByte(c)
			if depth == 0 {
				flush()
			}
			continue
		}

		switch c {
		case '[':
			flush()
			depth = 1
			current.WriteByte(c)
		case '.':
			flush()
			if i+1 < len(path) && path[i+1] == '.' {
				tokens = append(tokens, "..")
				i++
			}
		case '*':
			flush()
			tokens = append(tokens, "*")
		default:
			current.WriteByte(c)
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrSyntax, path)
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated string in %q", ErrSyntax, path)
	}

	flush()
	return tokens, nil
}
