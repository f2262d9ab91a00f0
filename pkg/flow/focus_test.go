package flow

import "testing"

func TestFocusToggle(t *testing.T) {
	f := NoFocus()
	if f.Active() {
		t.Fatal("zero focus should be inactive")
	}

	f = f.Toggle("USA")
	if !f.Active() || f.Country() != "USA" {
		t.Fatalf("Toggle(USA) = %v", f)
	}

	f = f.Toggle("FRA")
	if f.Country() != "FRA" {
		t.Errorf("Toggle(FRA) should switch, got %v", f)
	}

	f = f.Toggle("FRA")
	if f.Active() {
		t.Errorf("Toggle(FRA) again should clear, got %v", f)
	}
}

func TestFocusMatches(t *testing.T) {
	if !NoFocus().Matches("anything") {
		t.Error("unset focus should match everything")
	}
	f := FocusOn("USA")
	if !f.Matches("USA") || f.Matches("usa") || f.Matches("FRA") {
		t.Error("focus must match exactly and case-sensitively")
	}
}

func TestCoordinator(t *testing.T) {
	c := NewCoordinator(NoFocus())

	if got := c.Toggle("USA"); got != FocusOn("USA") {
		t.Errorf("Toggle() = %v", got)
	}
	if c.Current() != FocusOn("USA") {
		t.Errorf("Current() = %v", c.Current())
	}
	c.Toggle("USA")
	if c.Current().Active() {
		t.Errorf("second toggle should clear, got %v", c.Current())
	}

	c.Set(FocusOn("FRA"))
	c.Clear()
	if c.Current() != NoFocus() {
		t.Errorf("Clear() left %v", c.Current())
	}
}
