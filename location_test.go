package rjpath

import "testing"

func TestLocationRendering(t *testing.T) {
	tests := []struct {
		name     string
		location *Location
		want     string
	}{
		{
			name:     "root",
			location: rootLocation,
			want:     "$",
		},
		{
			name:     "property_chain",
			location: rootLocation.property("store").property("bicycle").property("color"),
			want:     "$.store.bicycle.color",
		},
		{
			name:     "mixed_chain",
			location: rootLocation.property("store").property("book").child(0).property("title"),
			want:     "$.store.book[0].title",
		},
		{
			name:     "nested_indices",
			location: rootLocation.property("grid").child(2).child(7),
			want:     "$.grid[2][7]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.location.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationSharing(t *testing.T) {
	parent := rootLocation.property("items")
	first := parent.child(0)
	second := parent.child(1)

	if first.parent != second.parent {
		t.Error("siblings should share their parent location")
	}
	if got := second.String(); got != "$.items[1]" {
		t.Errorf("String() = %q, want %q", got, "$.items[1]")
	}
}

func TestDedupe(t *testing.T) {
	a := Node{Value: 1.0, Location: rootLocation.property("a")}
	b := Node{Value: 2.0, Location: rootLocation.property("b")}

	got := dedupe([]Node{a, b, a})
	if len(got) != 2 {
		t.Fatalf("dedupe kept %d nodes, want 2", len(got))
	}
	if got[0].Path() != "$.a" || got[1].Path() != "$.b" {
		t.Errorf("dedupe order = [%s %s], want [$.a $.b]", got[0].Path(), got[1].Path())
	}
}
