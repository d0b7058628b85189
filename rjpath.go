package rjpath

import "fmt"

// Path is a compiled selector program. It holds no mutable state and
// may be evaluated concurrently against any number of documents.
type Path struct {
	expression string
	selector   selector
}

// Compile parses a JSONPath expression into a reusable Path.
// It fails with an error wrapping ErrSyntax when the expression is
// invalid: unbalanced brackets or quotes, a misplaced '$', a zero
// slice step, or an unknown operator or function.
func Compile(path string, opts ...Option) (*Path, error) {
	o := &options{matchMode: MatchContains}
	for _, opt := range opts {
		opt(o)
	}

	sel, err := parsePath(path, newFunctionTable(o))
	if err != nil {
		return nil, err
	}
	return &Path{expression: path, selector: sel}, nil
}

// String returns the original path expression.
func (p *Path) String() string {
	return p.expression
}

// Evaluate runs the compiled selector against a decoded document and
// returns every match with its canonical path, in document order and
// deduplicated. Missing properties, out-of-range indices and type
// mismatches contribute empty results rather than errors; only filter
// function failures surface as errors.
func (p *Path) Evaluate(document any) ([]Node, error) {
	return p.selector.selectNodes(Node{Value: document, Location: rootLocation})
}

// Values returns just the matched values.
func (p *Path) Values(document any) ([]any, error) {
	nodes, err := p.Evaluate(document)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(nodes))
	for i, node := range nodes {
		values[i] = node.Value
	}
	return values, nil
}

// First returns the first matched value and fails with an error
// wrapping ErrNoMatch when the query selects nothing.
func (p *Path) First(document any) (any, error) {
	nodes, err := p.Evaluate(document)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, p.expression)
	}
	return nodes[0].Value, nil
}

// Lookup returns the first matched value, reporting absence without an
// error.
func (p *Path) Lookup(document any) (any, bool, error) {
	nodes, err := p.Evaluate(document)
	if err != nil {
		return nil, false, err
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0].Value, true, nil
}

// Query compiles and evaluates a path in one call. Prefer Compile when
// the same expression is evaluated repeatedly.
func Query(document any, path string, opts ...Option) ([]Node, error) {
	compiled, err := Compile(path, opts...)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate(document)
}
