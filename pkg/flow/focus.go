package flow

// Focus is an optional country selection. The zero value is unset.
// Focus values are immutable; every change produces a new value.
type Focus struct {
	country string
	active  bool
}

// NoFocus returns the unset focus.
func NoFocus() Focus { return Focus{} }

// FocusOn returns a focus on country.
func FocusOn(country string) Focus { return Focus{country: country, active: true} }

// Active reports whether a country is selected.
func (f Focus) Active() bool { return f.active }

// Country returns the selected country, or "" when unset.
func (f Focus) Country() string { return f.country }

// Toggle selects country, or clears the focus if country is already selected.
func (f Focus) Toggle(country string) Focus {
	if f.active && f.country == country {
		return NoFocus()
	}
	return FocusOn(country)
}

// Matches reports whether a sanitized country passes the focus filter.
// Comparison is exact and case-sensitive.
func (f Focus) Matches(country string) bool {
	return !f.active || f.country == country
}

func (f Focus) String() string {
	if !f.active {
		return "<none>"
	}
	return f.country
}

// Coordinator owns the single process-wide [Focus]. Charts read the current
// value at the start of every recomputation; they never keep their own copy.
//
// Coordinator is not safe for concurrent use.
type Coordinator struct {
	current Focus
}

// NewCoordinator returns a coordinator holding initial.
func NewCoordinator(initial Focus) *Coordinator {
	return &Coordinator{current: initial}
}

// Current returns the focus value.
func (c *Coordinator) Current() Focus { return c.current }

// Toggle applies select/select-again-to-clear semantics and returns the new value.
func (c *Coordinator) Toggle(country string) Focus {
	c.current = c.current.Toggle(country)
	return c.current
}

// Set replaces the focus.
func (c *Coordinator) Set(f Focus) { c.current = f }

// Clear unsets the focus.
func (c *Coordinator) Clear() { c.current = NoFocus() }
