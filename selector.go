package rjpath

import (
	"maps"
	"slices"

	"github.com/jacoelho/rjpath/internal/stack"
)

// selector is the capability "given a node, produce an ordered set of
// nodes". Selectors are pure functions of their input and hold no
// per-evaluation state, which is what makes a compiled Path safe for
// concurrent reuse.
type selector interface {
	selectNodes(n Node) ([]Node, error)
}

type rootSelector struct{}

func (rootSelector) selectNodes(n Node) ([]Node, error) {
	return []Node{n}, nil
}

type propertySelector struct {
	name string
}

func (s propertySelector) selectNodes(n Node) ([]Node, error) {
	object, ok := n.Value.(map[string]any)
	if !ok {
		return nil, nil
	}
	value, ok := object[s.name]
	if !ok {
		return nil, nil
	}
	return []Node{{Value: value, Location: n.Location.property(s.name)}}, nil
}

type indexSelector struct {
	index int
}

func (s indexSelector) selectNodes(n Node) ([]Node, error) {
	array, ok := n.Value.([]any)
	if !ok {
		return nil, nil
	}

	index := s.index
	if index < 0 {
		index += len(array)
	}
	if index < 0 || index >= len(array) {
		return nil, nil
	}
	return []Node{{Value: array[index], Location: n.Location.child(index)}}, nil
}

type sliceSelector struct {
	start, end, step int
	hasStart, hasEnd bool
}

func (s sliceSelector) selectNodes(n Node) ([]Node, error) {
	array, ok := n.Value.([]any)
	if !ok {
		return nil, nil
	}
	size := len(array)

	var start, end int
	if s.step > 0 {
		start, end = 0, size
	} else {
		// Descending default: from the last element down to and
		// including index 0 (-1 is the exclusive sentinel).
		start, end = size-1, -1
	}
	if s.hasStart {
		start = s.start
		if start < 0 {
			start += size
		}
	}
	if s.hasEnd {
		end = s.end
		if end < 0 {
			end += size
		}
	}

	var result []Node
	appendAt := func(i int) {
		if i >= 0 && i < size {
			result = append(result, Node{Value: array[i], Location: n.Location.child(i)})
		}
	}
	if s.step > 0 {
		for i := start; i < end; i += s.step {
			appendAt(i)
		}
	} else {
		for i := start; i > end; i += s.step {
			appendAt(i)
		}
	}
	return result, nil
}

type wildcardSelector struct{}

func (wildcardSelector) selectNodes(n Node) ([]Node, error) {
	return childNodes(n), nil
}

type unionSelector struct {
	selectors []selector
}

func (s unionSelector) selectNodes(n Node) ([]Node, error) {
	var result []Node
	for _, sel := range s.selectors {
		nodes, err := sel.selectNodes(n)
		if err != nil {
			return nil, err
		}
		result = append(result, nodes...)
	}
	return dedupe(result), nil
}

// recursiveDescentSelector expands a node into itself plus every
// descendant in preorder. It never filters on its own; the next
// selector in the chain ranges over the expansion. The traversal uses
// an explicit stack so deeply nested documents cannot exhaust the call
// stack.
type recursiveDescentSelector struct{}

func (recursiveDescentSelector) selectNodes(n Node) ([]Node, error) {
	var result []Node

	pending := stack.NewWithCapacity[Node](16)
	pending.Push(n)
	for {
		node, ok := pending.Pop()
		if !ok {
			break
		}
		result = append(result, node)

		// Children are pushed in reverse so they pop in document order.
		children := childNodes(node)
		for i := len(children) - 1; i >= 0; i-- {
			pending.Push(children[i])
		}
	}
	return result, nil
}

type filterSelector struct {
	expression filterExpression
}

func (s filterSelector) selectNodes(n Node) ([]Node, error) {
	var result []Node
	for _, candidate := range childNodes(n) {
		keep, err := s.expression.evaluate(candidate)
		if err != nil {
			return nil, err
		}
		if keep {
			result = append(result, candidate)
		}
	}
	return result, nil
}

// compositeSelector threads a working node set through a selector
// chain, deduplicating between steps while preserving encounter order.
type compositeSelector struct {
	selectors []selector
}

func (s compositeSelector) selectNodes(n Node) ([]Node, error) {
	current := []Node{n}
	for _, sel := range s.selectors {
		next := make([]Node, 0, len(current))
		for _, node := range current {
			nodes, err := sel.selectNodes(node)
			if err != nil {
				return nil, err
			}
			next = append(next, nodes...)
		}
		current = dedupe(next)
	}
	return current, nil
}

// childNodes lists the immediate children of a node: array elements in
// index order, object members in sorted key order. Primitives and null
// have none.
func childNodes(n Node) []Node {
	switch v := n.Value.(type) {
	case []any:
		nodes := make([]Node, len(v))
		for i, value := range v {
			nodes[i] = Node{Value: value, Location: n.Location.child(i)}
		}
		return nodes
	case map[string]any:
		nodes := make([]Node, 0, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			nodes = append(nodes, Node{Value: v[key], Location: n.Location.property(key)})
		}
		return nodes
	default:
		return nil
	}
}
