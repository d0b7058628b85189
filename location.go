package rjpath

import (
	"strconv"
	"strings"
)

type locationKind uint8

const (
	locationRoot locationKind = iota
	locationProperty
	locationIndex
)

// Location identifies where a value lives inside a document as an
// immutable ancestry chain. Chains are built top-down during
// evaluation, so sharing a parent across many children is cheap and
// cycles cannot occur.
type Location struct {
	parent *Location
	kind   locationKind
	name   string
	index  int
}

var rootLocation = &Location{kind: locationRoot}

func (l *Location) property(name string) *Location {
	return &Location{parent: l, kind: locationProperty, name: name}
}

func (l *Location) child(index int) *Location {
	return &Location{parent: l, kind: locationIndex, index: index}
}

// String renders the canonical path, e.g. "$.store.book[0].title".
func (l *Location) String() string {
	var elements []*Location
	for cur := l; cur != nil; cur = cur.parent {
		elements = append(elements, cur)
	}

	var b strings.Builder
	for i := len(elements) - 1; i >= 0; i-- {
		switch element := elements[i]; element.kind {
		case locationRoot:
			b.WriteByte('$')
		case locationProperty:
			b.WriteByte('.')
			b.WriteString(element.name)
		case locationIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(element.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Node pairs a matched value with its location. Nodes are created
// fresh on every evaluation and never retained by the engine.
type Node struct {
	Value    any
	Location *Location
}

// Path renders the node's canonical path.
func (n Node) Path() string {
	return n.Location.String()
}

// dedupe removes nodes whose (value, location) pair was already seen,
// preserving first-occurrence order. Within a single evaluation a
// location determines its value, so the rendered path is a sufficient
// structural key.
func dedupe(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}

	seen := make(map[string]struct{}, len(nodes))
	result := nodes[:0]
	for _, node := range nodes {
		key := node.Path()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, node)
	}
	return result
}
