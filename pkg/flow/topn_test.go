package flow

import (
	"slices"
	"testing"
)

func ident(s string) string { return s }

func TestTopN(t *testing.T) {
	items := []string{"b", "a", "c", "a", "b", "d", "a"}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{}},
		{-3, []string{}},
		{1, []string{"a"}},
		{2, []string{"a", "b"}},
		// c and d tie at 1; c was seen first
		{3, []string{"a", "b", "c"}},
		{10, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		sel := TopN(items, ident, tt.n)
		if got := sel.Keys(); !slices.Equal(got, tt.want) {
			t.Errorf("TopN(n=%d) = %q, want %q", tt.n, got, tt.want)
		}
		for _, k := range tt.want {
			if !sel.Has(k) {
				t.Errorf("TopN(n=%d).Has(%q) = false", tt.n, k)
			}
		}
	}
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	items := []string{"x", "y", "y"}
	before := slices.Clone(items)
	TopN(items, ident, 1)
	if !slices.Equal(items, before) {
		t.Errorf("input mutated: %q", items)
	}
}

func TestCounterRanked(t *testing.T) {
	c := NewCounter()
	for _, k := range []string{"z", "y", "y", "x", "z"} {
		c.Add(k)
	}

	want := []KeyCount{{"z", 2}, {"y", 2}, {"x", 1}}
	if got := c.Ranked(); !slices.Equal(got, want) {
		t.Errorf("Ranked() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if c.Count("y") != 2 || c.Count("missing") != 0 {
		t.Errorf("Count() mismatch: y=%d missing=%d", c.Count("y"), c.Count("missing"))
	}
}

func TestRetain(t *testing.T) {
	items := []string{"a", "b", "c", "a"}
	sel := TopN(items, ident, 1)
	if got := Retain(items, ident, sel); !slices.Equal(got, []string{"a", "a"}) {
		t.Errorf("Retain() = %q", got)
	}
}
