package rjpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// filterExpression produces a boolean verdict for a candidate node.
type filterExpression interface {
	evaluate(n Node) (bool, error)
}

// valueExpression produces a value for a candidate node, feeding
// comparisons and function arguments.
type valueExpression interface {
	value(n Node) (any, error)
}

type orExpression struct {
	terms []filterExpression
}

func (e orExpression) evaluate(n Node) (bool, error) {
	for _, term := range e.terms {
		ok, err := term.evaluate(n)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type andExpression struct {
	terms []filterExpression
}

func (e andExpression) evaluate(n Node) (bool, error) {
	for _, term := range e.terms {
		ok, err := term.evaluate(n)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

type notExpression struct {
	inner filterExpression
}

func (e notExpression) evaluate(n Node) (bool, error) {
	ok, err := e.inner.evaluate(n)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type comparisonExpression struct {
	op          string
	left, right valueExpression
}

func (e comparisonExpression) evaluate(n Node) (bool, error) {
	left, err := e.left.value(n)
	if err != nil {
		return false, err
	}
	right, err := e.right.value(n)
	if err != nil {
		return false, err
	}

	switch e.op {
	case "==":
		return equalValues(left, right), nil
	case "!=":
		return !equalValues(left, right), nil
	}

	// Incomparable operands are a non-match, not an error.
	order, ok := orderValues(left, right)
	if !ok {
		return false, nil
	}
	switch e.op {
	case "<":
		return order < 0, nil
	case "<=":
		return order <= 0, nil
	case ">":
		return order > 0, nil
	case ">=":
		return order >= 0, nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrEvaluation, e.op)
	}
}

// propertyTruthyExpression implements the `@.name` existence and
// truthiness test: an absent property (or a null/empty/zero value)
// rejects the candidate.
type propertyTruthyExpression struct {
	path []string
}

func (e propertyTruthyExpression) evaluate(n Node) (bool, error) {
	return truthy(lookupProperty(n, e.path)), nil
}

// functionPredicateExpression calls a registered function and coerces
// its result to boolean.
type functionPredicateExpression struct {
	name string
	fn   Function
	args []valueExpression
}

func (e functionPredicateExpression) evaluate(n Node) (bool, error) {
	result, err := callFunction(e.name, e.fn, e.args, n)
	if err != nil {
		return false, err
	}
	return truthy(result), nil
}

type alwaysTrueExpression struct{}

func (alwaysTrueExpression) evaluate(Node) (bool, error) {
	return true, nil
}

// stringLiteralEqualsExpression is the legacy bare-literal filter form
// `[?('x')]`: it matches candidates whose own value equals the string.
type stringLiteralEqualsExpression struct {
	literal string
}

func (e stringLiteralEqualsExpression) evaluate(n Node) (bool, error) {
	s, ok := n.Value.(string)
	return ok && s == e.literal, nil
}

// truthyExpression adapts a value expression into a filter by applying
// the standard truthiness coercion to its result.
type truthyExpression struct {
	inner valueExpression
}

func (e truthyExpression) evaluate(n Node) (bool, error) {
	value, err := e.inner.value(n)
	if err != nil {
		return false, err
	}
	return truthy(value), nil
}

type currentNodeExpression struct{}

func (currentNodeExpression) value(n Node) (any, error) {
	return n.Value, nil
}

// propertyValueExpression resolves `@.a.b` against the candidate.
type propertyValueExpression struct {
	path []string
}

func (e propertyValueExpression) value(n Node) (any, error) {
	return lookupProperty(n, e.path), nil
}

type literalExpression struct {
	literal any
}

func (e literalExpression) value(Node) (any, error) {
	return e.literal, nil
}

// subQueryExpression evaluates a bracketed relative path such as
// `@.tags[?(@ == 'x')]` rooted at the candidate node. A single match
// yields the matched value itself so scalar comparisons such as
// `@.tags[0] == 'x'` work; zero or several matches yield an array,
// which is what count expects and what truthiness needs to reject an
// empty result.
type subQueryExpression struct {
	sel selector
}

func (e subQueryExpression) value(n Node) (any, error) {
	nodes, err := e.sel.selectNodes(n)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0].Value, nil
	}

	values := make([]any, len(nodes))
	for i, node := range nodes {
		values[i] = node.Value
	}
	return values, nil
}

type functionCallExpression struct {
	name string
	fn   Function
	args []valueExpression
}

func (e functionCallExpression) value(n Node) (any, error) {
	return callFunction(e.name, e.fn, e.args, n)
}

// lookupProperty walks a dotted property path from the candidate node.
// When the candidate is not an object the whole current value is
// returned instead of null; filters like `@.x == value(@.x)` rely on
// this historical fallback.
func lookupProperty(n Node, path []string) any {
	if _, ok := n.Value.(map[string]any); !ok {
		return n.Value
	}

	current := n.Value
	for _, name := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = object[name]
	}
	return current
}

func callFunction(name string, fn Function, argExprs []valueExpression, n Node) (any, error) {
	args := make([]any, len(argExprs))
	for i, expr := range argExprs {
		value, err := expr.value(n)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	result, err := fn(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEvaluation, name, err)
	}
	return result, nil
}

// expressionParser turns filter-predicate text into an expression
// tree. Functions are resolved by name at parse time, so an unknown
// function is a compile error.
type expressionParser struct {
	functions map[string]Function
}

var (
	functionCallRe = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\((.*)\)$`)
	plainPathRe    = regexp.MustCompile(`^(?:\.[-\w]+)+$`)
)

// parseFilter parses by descending precedence: `||`, `&&`, `!`,
// parenthesized groups, comparisons, then atoms. Splitting only
// happens at top-level positions, never inside quotes or parentheses.
func (p *expressionParser) parseFilter(s string) (filterExpression, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty filter expression", ErrSyntax)
	}

	if parts := splitTopLevel(s, "||"); len(parts) > 1 {
		terms, err := p.parseFilterList(parts)
		if err != nil {
			return nil, err
		}
		return orExpression{terms: terms}, nil
	}

	if parts := splitTopLevel(s, "&&"); len(parts) > 1 {
		terms, err := p.parseFilterList(parts)
		if err != nil {
			return nil, err
		}
		return andExpression{terms: terms}, nil
	}

	if strings.HasPrefix(s, "!") && !strings.HasPrefix(s, "!=") {
		inner, err := p.parseFilter(s[1:])
		if err != nil {
			return nil, err
		}
		return notExpression{inner: inner}, nil
	}

	if inner, ok := stripOuterParens(s); ok {
		return p.parseFilter(inner)
	}

	if left, op, right, ok := splitComparison(s); ok {
		leftExpr, err := p.parseValue(left)
		if err != nil {
			return nil, err
		}
		rightExpr, err := p.parseValue(right)
		if err != nil {
			return nil, err
		}
		return comparisonExpression{op: op, left: leftExpr, right: rightExpr}, nil
	}

	return p.parseFilterAtom(s)
}

func (p *expressionParser) parseFilterList(parts []string) ([]filterExpression, error) {
	terms := make([]filterExpression, 0, len(parts))
	for _, part := range parts {
		term, err := p.parseFilter(part)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func (p *expressionParser) parseFilterAtom(s string) (filterExpression, error) {
	switch {
	case s == "@":
		return alwaysTrueExpression{}, nil
	case strings.HasPrefix(s, "@.") || strings.HasPrefix(s, "@["):
		value, err := p.parseCurrentPath(s)
		if err != nil {
			return nil, err
		}
		if plain, ok := value.(propertyValueExpression); ok {
			return propertyTruthyExpression{path: plain.path}, nil
		}
		return truthyExpression{inner: value}, nil
	}

	if m := functionCallRe.FindStringSubmatch(s); m != nil {
		name, fn, args, err := p.parseCall(m[1], m[2])
		if err != nil {
			return nil, err
		}
		return functionPredicateExpression{name: name, fn: fn, args: args}, nil
	}

	if isQuoted(s) {
		return stringLiteralEqualsExpression{literal: unquote(s)}, nil
	}

	return nil, fmt.Errorf("%w: cannot parse filter expression %q", ErrSyntax, s)
}

func (p *expressionParser) parseValue(s string) (valueExpression, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty value expression", ErrSyntax)
	case s == "@":
		return currentNodeExpression{}, nil
	case strings.HasPrefix(s, "@.") || strings.HasPrefix(s, "@["):
		return p.parseCurrentPath(s)
	}

	if m := functionCallRe.FindStringSubmatch(s); m != nil {
		name, fn, args, err := p.parseCall(m[1], m[2])
		if err != nil {
			return nil, err
		}
		return functionCallExpression{name: name, fn: fn, args: args}, nil
	}

	// Literal order: boolean keywords, numbers, quoted strings, then
	// bare text as a string literal.
	switch s {
	case "true":
		return literalExpression{literal: true}, nil
	case "false":
		return literalExpression{literal: false}, nil
	case "null":
		return literalExpression{literal: nil}, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return literalExpression{literal: f}, nil
	}
	if isQuoted(s) {
		return literalExpression{literal: unquote(s)}, nil
	}
	return literalExpression{literal: s}, nil
}

func (p *expressionParser) parseCall(name, rawArgs string) (string, Function, []valueExpression, error) {
	fn, ok := p.functions[name]
	if !ok {
		return "", nil, nil, fmt.Errorf("%w: unknown function %q", ErrSyntax, name)
	}

	var args []valueExpression
	if strings.TrimSpace(rawArgs) != "" {
		for _, part := range splitTopLevel(rawArgs, ",") {
			arg, err := p.parseValue(part)
			if err != nil {
				return "", nil, nil, err
			}
			args = append(args, arg)
		}
	}
	return name, fn, args, nil
}

// parseCurrentPath parses an `@`-rooted reference. A plain dotted
// chain becomes a direct property lookup; anything with bracket
// selectors is compiled as a relative sub-query rooted at the
// candidate node.
func (p *expressionParser) parseCurrentPath(s string) (valueExpression, error) {
	relative := s[1:]
	if plainPathRe.MatchString(relative) {
		return propertyValueExpression{path: strings.Split(relative[1:], ".")}, nil
	}

	if hasTopLevelSpace(relative) {
		return nil, fmt.Errorf("%w: cannot parse %q", ErrSyntax, s)
	}
	sel, err := parsePath(relative, p.functions)
	if err != nil {
		return nil, err
	}
	return subQueryExpression{sel: sel}, nil
}

// hasTopLevelSpace reports whitespace outside quotes and brackets;
// path references never contain one, so its presence means unparsed
// trailing text, typically an unknown operator.
func hasTopLevelSpace(s string) bool {
	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ' ', '\t':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// splitTopLevel splits on a separator, ignoring occurrences inside
// quotes, parentheses and brackets. Backslashes escape the following
// character inside quotes.
func splitTopLevel(s, sep string) []string {
	var (
		parts []string
		quote byte
		depth int
		start int
	)

	for i := 0; i < len(s); {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i += 2
				continue
			case quote:
				quote = 0
			}
			i++
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}

		if depth == 0 && quote == 0 && strings.HasPrefix(s[i:], sep) {
			parts = append(parts, strings.TrimSpace(s[start:i]))
			i += len(sep)
			start = i
			continue
		}
		i++
	}

	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// splitComparison finds the first top-level comparison operator,
// testing two-character operators before their one-character prefixes
// at each position.
func splitComparison(s string) (left, op, right string, found bool) {
	var (
		quote byte
		depth int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
			continue
		case '(', '[':
			depth++
			continue
		case ')', ']':
			depth--
			continue
		}
		if depth != 0 {
			continue
		}

		for _, candidate := range [...]string{"==", "!=", "<=", ">="} {
			if strings.HasPrefix(s[i:], candidate) {
				return strings.TrimSpace(s[:i]), candidate, strings.TrimSpace(s[i+2:]), true
			}
		}
		if c == '<' || c == '>' {
			return strings.TrimSpace(s[:i]), string(c), strings.TrimSpace(s[i+1:]), true
		}
	}
	return "", "", "", false
}

// stripOuterParens unwraps an expression fully enclosed by one pair of
// parentheses.
func stripOuterParens(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}

	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i < len(s)-1 {
				return "", false
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]
}

// unquote strips the surrounding quotes and resolves backslash
// escapes.
func unquote(s string) string {
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '\'', '"':
			b.WriteByte(body[i])
		default:
			// Unknown escapes keep the backslash so regex patterns
			// like \d survive unquoting.
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
