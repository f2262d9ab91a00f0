package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tierflow/pkg/chart"
	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/observability"
)

// Snapshot is the state of every chart after one recomputation.
type Snapshot struct {
	Focus    flow.Focus
	Result   flow.Result
	Layering Layering
	// Bars is the sibling country bar chart under the same focus.
	Bars []chart.Bar
	// Countries ranks every country of the records, ignoring cutoffs and
	// focus, so a caller can offer any of them as a focus target.
	Countries []flow.KeyCount
}

// Session owns the records, the chart options and the shared focus of one
// interactive view. Every trigger recomputes all charts synchronously
// before returning; a failed recomputation keeps the previous snapshot.
//
// Session is not safe for concurrent use.
type Session struct {
	records   []flow.RawRecord
	opts      flow.Options
	variant   string
	focus     *flow.Coordinator
	countries []flow.KeyCount
	snapshot  Snapshot
}

// NewSession validates opts and computes the initial snapshot.
func NewSession(records []flow.RawRecord, opts Options) (*Session, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	fo := opts.FlowOptions()
	s := &Session{
		records: records,
		opts:    fo,
		variant: opts.Variant,
		focus:   flow.NewCoordinator(fo.Focus),
	}
	s.countries = flow.Countries(records, fo.Columns, fo.Fallbacks)
	if _, err := s.recompute("init"); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the latest snapshot.
func (s *Session) Snapshot() Snapshot { return s.snapshot }

// Focus returns the current focus.
func (s *Session) Focus() flow.Focus { return s.focus.Current() }

// Variant returns the chart variant name.
func (s *Session) Variant() string { return s.variant }

// TopCountries returns the current country cutoff.
func (s *Session) TopCountries() int { return s.opts.TopCountries }

// TopCategories returns the current category cutoff.
func (s *Session) TopCategories() int { return s.opts.TopCategories }

// SetRecords replaces the records. The focus is kept even if the new
// records no longer contain the focused country.
func (s *Session) SetRecords(records []flow.RawRecord) (Snapshot, error) {
	s.records = records
	s.countries = flow.Countries(records, s.opts.Columns, s.opts.Fallbacks)
	return s.recompute("set-records")
}

// SetTopCountries changes the country cutoff. Unlike [Options], zero is
// kept as zero and yields an empty graph unless a focus is set.
func (s *Session) SetTopCountries(n int) (Snapshot, error) {
	if err := tferrors.ValidateTopN("top_countries", n); err != nil {
		return s.snapshot, err
	}
	s.opts.TopCountries = n
	return s.recompute("set-top-countries")
}

// SetTopCategories changes the category cutoff.
func (s *Session) SetTopCategories(n int) (Snapshot, error) {
	if err := tferrors.ValidateTopN("top_categories", n); err != nil {
		return s.snapshot, err
	}
	s.opts.TopCategories = n
	return s.recompute("set-top-categories")
}

// SetVariant switches to another chart variant, keeping cutoffs and focus.
func (s *Session) SetVariant(name string) (Snapshot, error) {
	v, ok := flow.LookupVariant(name)
	if !ok {
		return s.snapshot, ValidateVariant(name)
	}
	s.variant = v.Name
	s.opts.Columns = v.Columns
	s.opts.Fallbacks = v.Fallbacks
	s.countries = flow.Countries(s.records, s.opts.Columns, s.opts.Fallbacks)
	return s.recompute("set-variant")
}

// ToggleFocus selects country, or clears the focus when country is
// already selected.
func (s *Session) ToggleFocus(country string) (Snapshot, error) {
	from := s.focus.Current()
	to := s.focus.Toggle(country)
	observability.Session().OnFocusChange(context.Background(), from.Country(), to.Country())
	return s.recompute("toggle-focus")
}

// ClearFocus unsets the focus.
func (s *Session) ClearFocus() (Snapshot, error) {
	from := s.focus.Current()
	s.focus.Clear()
	if from.Active() {
		observability.Session().OnFocusChange(context.Background(), from.Country(), "")
	}
	return s.recompute("clear-focus")
}

func (s *Session) recompute(trigger string) (Snapshot, error) {
	start := time.Now()
	defer func() {
		observability.Session().OnRecompute(context.Background(), trigger, time.Since(start))
	}()

	opts := s.opts
	opts.Focus = s.focus.Current()

	res, err := flow.Run(s.records, opts)
	if err != nil {
		return s.snapshot, err
	}
	layering, err := Verify(res.Graph)
	if err != nil {
		return s.snapshot, err
	}
	s.snapshot = Snapshot{
		Focus:     opts.Focus,
		Result:    res,
		Layering:  layering,
		Bars:      chart.CountryBars(s.records, opts.Columns, opts.Fallbacks, opts.TopCountries, opts.Focus),
		Countries: s.countries,
	}
	return s.snapshot, nil
}
