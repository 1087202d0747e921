package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLeaves(t *testing.T) {
	t.Parallel()

	tree := mustUnmarshal(t, `{"a":{"b":1,"c":[true,{"d":null}]},"e":{},"f":"x"}`)

	var got [][]string
	for _, leaf := range Leaves(tree) {
		got = append(got, leaf.Path)
	}

	want := [][]string{
		{"a", "b"},
		{"a", "c", "0"},
		{"a", "c", "1", "d"},
		{"f"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Leaves() paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tree := mustUnmarshal(t, `{"a":{"list":[10,{"k":"v"}]},"n":null}`)

	tests := []struct {
		name   string
		path   []string
		want   any
		wantOK bool
	}{
		{name: "root", path: nil, want: tree, wantOK: true},
		{name: "nested_array", path: []string{"a", "list", "1", "k"}, want: "v", wantOK: true},
		{name: "null_member", path: []string{"n"}, want: nil, wantOK: true},
		{name: "missing", path: []string{"a", "nope"}},
		{name: "out_of_range", path: []string{"a", "list", "2"}},
		{name: "not_index", path: []string{"a", "list", "x"}},
		{name: "through_scalar", path: []string{"a", "list", "0", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Lookup(tree, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%v) ok = %t, want %t", tt.path, ok, tt.wantOK)
			}
			if ok && !Equal(got, tt.want) {
				t.Fatalf("Lookup(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tree   string
		path   []string
		value  any
		want   string
		wantOK bool
	}{
		{
			name:   "creates_objects",
			tree:   `{}`,
			path:   []string{"a", "b"},
			value:  "v",
			want:   `{"a":{"b":"v"}}`,
			wantOK: true,
		},
		{
			name:   "replaces_null",
			tree:   `{"a":null}`,
			path:   []string{"a", "b"},
			value:  true,
			want:   `{"a":{"b":true}}`,
			wantOK: true,
		},
		{
			name:   "appends_to_array",
			tree:   `{"a":[1]}`,
			path:   []string{"a", "1"},
			value:  "two",
			want:   `{"a":[1,"two"]}`,
			wantOK: true,
		},
		{
			name:   "into_array_element",
			tree:   `{"a":[{"x":1}]}`,
			path:   []string{"a", "0", "y"},
			value:  "two",
			want:   `{"a":[{"x":1,"y":"two"}]}`,
			wantOK: true,
		},
		{
			name:  "array_gap",
			tree:  `{"a":[1]}`,
			path:  []string{"a", "3"},
			value: "x",
			want:  `{"a":[1]}`,
		},
		{
			name:  "blocked_by_scalar",
			tree:  `{"a":"text"}`,
			path:  []string{"a", "b"},
			value: "x",
			want:  `{"a":"text"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Insert(mustUnmarshal(t, tt.tree), tt.path, tt.value)
			if ok != tt.wantOK {
				t.Fatalf("Insert() ok = %t, want %t", ok, tt.wantOK)
			}
			if diff := cmp.Diff(mustUnmarshal(t, tt.want), got); diff != "" {
				t.Fatalf("Insert() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tree   string
		path   []string
		want   string
		wantOK bool
	}{
		{name: "member", tree: `{"a":1,"b":2}`, path: []string{"a"}, want: `{"b":2}`, wantOK: true},
		{name: "nested", tree: `{"a":{"b":1,"c":2}}`, path: []string{"a", "c"}, want: `{"a":{"b":1}}`, wantOK: true},
		{name: "array_element", tree: `{"a":[1,2,3]}`, path: []string{"a", "1"}, want: `{"a":[1,3]}`, wantOK: true},
		{name: "inside_array", tree: `{"a":[{"k":1,"j":2}]}`, path: []string{"a", "0", "j"}, want: `{"a":[{"k":1}]}`, wantOK: true},
		{name: "missing", tree: `{"a":1}`, path: []string{"b"}, want: `{"a":1}`},
		{name: "through_scalar", tree: `{"a":1}`, path: []string{"a", "b"}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Delete(mustUnmarshal(t, tt.tree), tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Delete() ok = %t, want %t", ok, tt.wantOK)
			}
			if diff := cmp.Diff(mustUnmarshal(t, tt.want), got); diff != "" {
				t.Fatalf("Delete() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
