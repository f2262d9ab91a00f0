package flow

// Default retention counts.
const (
	DefaultTopCountries  = 12
	DefaultTopCategories = 12
)

// Options configures one pipeline run.
type Options struct {
	// TopCountries is the number of countries retained when no focus is set.
	TopCountries int
	// TopCategories is the number of category labels retained.
	TopCategories int
	// Focus restricts the run to one country and bypasses the country cutoff.
	Focus Focus
	// Columns maps the tracked fields onto record keys.
	Columns Columns
	// Fallbacks replace blank fields.
	Fallbacks Fallbacks
	// SplitQuotedLists explodes "['a', 'b']" into two labels instead of
	// one composite "a, b" label.
	SplitQuotedLists bool
}

// DefaultOptions returns the options of the discipline chart.
func DefaultOptions() Options {
	return Options{
		TopCountries:  DefaultTopCountries,
		TopCategories: DefaultTopCategories,
		Columns:       DefaultColumns(),
		Fallbacks:     DefaultFallbacks(),
	}
}

// Result is a [Graph] together with the intermediate selections that
// produced it.
type Result struct {
	Graph Graph

	// Countries holds the retained countries; empty under focus.
	Countries Selection
	// Categories holds the retained category labels.
	Categories Selection

	Records  int // raw records read
	Filtered int // cleaned records surviving the country stage
	Exploded int // exploded rows before the category cutoff
	Retained int // exploded rows contracted into edges
}

func countryOf(r CleanedRecord) string { return r.Country }
func categoryOf(r ExplodedRecord) string { return r.Category }

// Run executes the whole pipeline and reports its intermediate counts.
// It fails only on internal invariant violations and never returns a
// partially populated graph.
func Run(records []RawRecord, opts Options) (Result, error) {
	cleaned := SanitizeAll(records, opts.Columns, opts.Fallbacks)
	res := Result{Records: len(records)}

	rows, countries := FilterCountries(cleaned, opts.TopCountries, opts.Focus)
	res.Countries = countries
	res.Filtered = len(rows)

	exploded := Explode(rows, opts.SplitQuotedLists)
	res.Exploded = len(exploded)

	final, categories := FilterCategories(exploded, opts.TopCategories)
	res.Categories = categories
	res.Retained = len(final)

	g, err := Resolve(Aggregate(final))
	if err != nil {
		return Result{}, err
	}
	res.Graph = g
	return res, nil
}

// FilterCountries applies the country stage. With a focus only the focused
// country's records survive and the cutoff is bypassed; the returned
// selection is then empty.
func FilterCountries(records []CleanedRecord, n int, focus Focus) ([]CleanedRecord, Selection) {
	if focus.Active() {
		var rows []CleanedRecord
		for _, r := range records {
			if focus.Matches(r.Country) {
				rows = append(rows, r)
			}
		}
		return rows, Selection{}
	}
	sel := TopN(records, countryOf, n)
	return Retain(records, countryOf, sel), sel
}

// FilterCategories keeps the rows of the n most frequent category labels.
// It runs after the country stage, so ranks reflect the surviving rows only.
func FilterCategories(rows []ExplodedRecord, n int) ([]ExplodedRecord, Selection) {
	sel := TopN(rows, categoryOf, n)
	return Retain(rows, categoryOf, sel), sel
}

// Build returns the flow graph of records.
func Build(records []RawRecord, opts Options) (Graph, error) {
	res, err := Run(records, opts)
	if err != nil {
		return Graph{}, err
	}
	return res.Graph, nil
}

// Countries ranks every sanitized country by record count, ignoring both
// cutoffs and the focus. Interactive callers use it to offer focus choices.
func Countries(records []RawRecord, cols Columns, fb Fallbacks) []KeyCount {
	c := NewCounter()
	for _, r := range records {
		c.Add(field(r, cols.Country, fb.Country))
	}
	return c.Ranked()
}
