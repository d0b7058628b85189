package rjpath

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPropertyAndIndexSelection(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "nested_property",
			path: "$.store.bicycle.color",
			want: []any{"red"},
		},
		{
			name: "missing_property",
			path: "$.store.bicycle.gears",
			want: []any{},
		},
		{
			name: "property_on_array_is_empty",
			path: "$.store.book.title",
			want: []any{},
		},
		{
			name: "index",
			path: "$.store.book[0].title",
			want: []any{"Sayings of the Century"},
		},
		{
			name: "negative_index",
			path: "$.store.book[-1].title",
			want: []any{"The Lord of the Rings"},
		},
		{
			name: "index_out_of_range",
			path: "$.store.book[4].title",
			want: []any{},
		},
		{
			name: "negative_index_out_of_range",
			path: "$.store.book[-5].title",
			want: []any{},
		},
		{
			name: "index_on_object_is_empty",
			path: "$.store.bicycle[0]",
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestSliceSelection(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "start_end",
			path: "$.store.book[1:3].title",
			want: []any{"Sword of Honour", "Moby Dick"},
		},
		{
			name: "stepped",
			path: "$.store.book[0:4:2].title",
			want: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name: "open_start",
			path: "$.store.book[:2].title",
			want: []any{"Sayings of the Century", "Sword of Honour"},
		},
		{
			name: "open_end",
			path: "$.store.book[2:].title",
			want: []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "negative_start",
			path: "$.store.book[-2:].title",
			want: []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "negative_end",
			path: "$.store.book[:-2].title",
			want: []any{"Sayings of the Century", "Sword of Honour"},
		},
		{
			name: "reversed",
			path: "$.store.book[::-1].title",
			want: []any{"The Lord of the Rings", "Moby Dick", "Sword of Honour", "Sayings of the Century"},
		},
		{
			name: "reversed_with_bounds",
			path: "$.store.book[2:0:-1].title",
			want: []any{"Moby Dick", "Sword of Honour"},
		},
		{
			name: "end_beyond_size",
			path: "$.store.book[2:9].title",
			want: []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "slice_on_object_is_empty",
			path: "$.store.bicycle[0:2]",
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestWildcardSelection(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	// Object members are visited in sorted key order.
	assertValues(t, doc, "$.store.bicycle.*", []any{"red", 19.95})

	assertValues(t, doc, "$.store.book[*].author", []any{
		"Nigel Rees", "Evelyn Waugh", "Herman Melville", "J. R. R. Tolkien",
	})

	// Wildcard over a primitive selects nothing.
	assertValues(t, doc, "$.store.bicycle.color.*", []any{})
}

func TestUnionSelection(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "index_union_preserves_order",
			path: "$.store.book[0,2].title",
			want: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name: "overlapping_union_deduplicates",
			path: "$.store.book[0,0].title",
			want: []any{"Sayings of the Century"},
		},
		{
			name: "reversed_order_is_preserved",
			path: "$.store.book[2,0].title",
			want: []any{"Moby Dick", "Sayings of the Century"},
		},
		{
			name: "property_union",
			path: "$.store.bicycle['price','color']",
			want: []any{19.95, "red"},
		},
		{
			name: "unquoted_property_union",
			path: "$.store.bicycle[color,price]",
			want: []any{"red", 19.95},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestRecursiveDescent(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	// Preorder expansion: the bicycle subtree sorts before book.
	assertValues(t, doc, "$..price", []any{19.95, 8.95, 12.99, 8.99, 22.99})
	assertValues(t, doc, "$.store..price", []any{19.95, 8.95, 12.99, 8.99, 22.99})

	nodes, err := Query(doc, "$..price")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	wantPaths := []string{
		"$.store.bicycle.price",
		"$.store.book[0].price",
		"$.store.book[1].price",
		"$.store.book[2].price",
		"$.store.book[3].price",
	}
	var gotPaths []string
	for _, node := range nodes {
		gotPaths = append(gotPaths, node.Path())
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	assertValues(t, doc, "$..book[2].author", []any{"Herman Melville"})
	assertValues(t, doc, "$..book[:2].title", []any{"Sayings of the Century", "Sword of Honour"})
	assertValues(t, doc, "$..nothing", []any{})
}

func TestFilterOverObjects(t *testing.T) {
	doc := mustDecode(t, `{"small": 1, "big": 10, "name": "x"}`)

	// Candidates are the object's members in sorted key order.
	assertValues(t, doc, "$[?(@ > 5)]", []any{10.0})
	assertValues(t, doc, "$[?(@)]", []any{10.0, "x", 1.0})
}

func assertValues(t *testing.T, doc any, path string, want []any) {
	t.Helper()

	compiled, err := Compile(path)
	if err != nil {
		t.Fatalf("Compile(%q): %v", path, err)
	}
	got, err := compiled.Values(doc)
	if err != nil {
		t.Fatalf("Values(%q): %v", path, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Values(%q) = %v, want %v", path, got, want)
	}
}
