package rjpath

import (
	"errors"
	"testing"
)

func TestFilterComparisons(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "numeric_less_than",
			path: "$.store.book[?(@.price < 10)].title",
			want: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name: "numeric_greater_equal",
			path: "$.store.book[?(@.price >= 12.99)].title",
			want: []any{"Sword of Honour", "The Lord of the Rings"},
		},
		{
			name: "string_equality",
			path: "$.store.book[?(@.category == 'fiction')].price",
			want: []any{12.99, 8.99, 22.99},
		},
		{
			name: "string_inequality",
			path: "$.store.book[?(@.category != 'fiction')].title",
			want: []any{"Sayings of the Century"},
		},
		{
			name: "double_quoted_literal",
			path: `$.store.book[?(@.author == "Herman Melville")].title`,
			want: []any{"Moby Dick"},
		},
		{
			name: "literal_on_left",
			path: "$.store.book[?(10 > @.price)].title",
			want: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name: "compare_missing_property_is_no_match",
			path: "$.store.book[?(@.isbn == '0-553-21311-3')].title",
			want: []any{"Moby Dick"},
		},
		{
			name: "mixed_types_do_not_order",
			path: "$.store.book[?(@.title > 5)]",
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestFilterLogic(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "and",
			path: "$.store.book[?(@.price < 10 && @.category == 'fiction')].title",
			want: []any{"Moby Dick"},
		},
		{
			name: "or",
			path: "$.store.book[?(@.price < 9 || @.price > 20)].title",
			want: []any{"Sayings of the Century", "Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "and_binds_tighter_than_or",
			path: "$.store.book[?(@.price < 10 && @.category == 'fiction' || @.category == 'reference')].title",
			want: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name: "parentheses_override_grouping",
			path: "$.store.book[?((@.price < 10 || @.price > 20) && @.category == 'fiction')].title",
			want: []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "parenthesized_comparison",
			path: "$.store.book[?((@.price == 8.95))].title",
			want: []any{"Sayings of the Century"},
		},
		{
			name: "existence",
			path: "$.store.book[?(@.isbn)].title",
			want: []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name: "negated_existence",
			path: "$.store.book[?(!@.isbn)].title",
			want: []any{"Sayings of the Century", "Sword of Honour"},
		},
		{
			name: "bare_current_node_matches_all",
			path: "$.store.book[?(@)].title",
			want: []any{"Sayings of the Century", "Sword of Honour", "Moby Dick", "The Lord of the Rings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestFilterSubQueries(t *testing.T) {
	doc := mustDecode(t, `{
	  "users": [
	    {"name": "alice", "tags": ["admin", "ops"]},
	    {"name": "bob", "tags": ["ops"]},
	    {"name": "carol", "tags": []}
	  ]
	}`)

	tests := []struct {
		name string
		path string
		want []any
	}{
		{
			name: "count_nested_filter",
			path: "$.users[?(count(@.tags[?(@ == 'admin')]) > 0)].name",
			want: []any{"alice"},
		},
		{
			name: "indexed_subpath_truthiness",
			path: "$.users[?(@.tags[0])].name",
			want: []any{"alice", "bob"},
		},
		{
			name: "indexed_subpath_comparison",
			path: "$.users[?(@.tags[0] == 'ops')].name",
			want: []any{"bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, doc, tt.path, tt.want)
		})
	}
}

func TestLegacyStringLiteralFilter(t *testing.T) {
	doc := mustDecode(t, `{"tags": ["admin", "ops", "admin"]}`)

	assertValues(t, doc, "$.tags[?('admin')]", []any{"admin", "admin"})
}

func TestPropertyLookupFallback(t *testing.T) {
	// On a non-object candidate, @.anything yields the whole current
	// value rather than null.
	doc := mustDecode(t, `{"values": [3, 7]}`)

	assertValues(t, doc, "$.values[?(@.missing == 3)]", []any{3.0})
	assertValues(t, doc, "$.values[?(@.x == value(@.y))]", []any{3.0, 7.0})
}

func TestFilterNullComparison(t *testing.T) {
	doc := mustDecode(t, `{"items": [{"v": null}, {"v": 1}, {}]}`)

	assertValues(t, doc, "$.items[?(@.v == null)]", []any{
		map[string]any{"v": nil},
		map[string]any{},
	})
}

func TestFilterEvaluationErrors(t *testing.T) {
	doc := mustDecode(t, storeJSON)

	compiled, err := Compile("$.store.book[?(length(@.title, @.author) > 1)]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := compiled.Evaluate(doc); !errors.Is(err, ErrEvaluation) {
		t.Errorf("arity violation error = %v, want ErrEvaluation", err)
	}

	compiled, err = Compile(`$.store.book[?(match(@.title, '[unclosed'))]`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := compiled.Evaluate(doc); !errors.Is(err, ErrEvaluation) {
		t.Errorf("bad regex error = %v, want ErrEvaluation", err)
	}
}
