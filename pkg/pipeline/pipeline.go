// Package pipeline runs the record → flow graph → artifact pipeline.
//
// The same pipeline backs every entry point of the CLI: one-shot builds,
// the sibling bar chart and the interactive explorer. Centralizing it keeps
// option defaults, validation and caching identical everywhere.
//
// # Architecture
//
// A run has two stages:
//
//  1. Build: clean, filter, explode and aggregate the records into a
//     [flow.Graph], then verify it as a layered DAG.
//  2. Render: produce the requested artifacts (JSON, DOT, SVG, PNG).
//
// Both stages are cached by content hash through a [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Focus = "USA"
//	opts.Formats = []string{"json", "svg"}
//	result, err := runner.Execute(ctx, records, opts)
//	svg := result.Artifacts["svg"]
//
// Interactive consumers use a [Session] instead, which recomputes
// synchronously every time the focus or a cutoff changes.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tierflow/pkg/cache"
	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultVariant is the chart variant used when none is given.
	DefaultVariant = flow.VariantDisciplines

	// DefaultTopCountries is the country cutoff of [DefaultOptions].
	DefaultTopCountries = flow.DefaultTopCountries

	// DefaultTopCategories is the category cutoff of [DefaultOptions].
	DefaultTopCategories = flow.DefaultTopCategories
)

// Format constants for output formats.
const (
	FormatJSON = graph.FormatJSON
	FormatDOT  = graph.FormatDOT
	FormatSVG  = graph.FormatSVG
	FormatPNG  = graph.FormatPNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Build options
	Variant          string       `json:"variant,omitempty"`
	TopCountries     int          `json:"top_countries"`   // 0 keeps no country unless focused
	TopCategories    int          `json:"top_categories"`  // 0 keeps no category
	Focus            string       `json:"focus,omitempty"` // empty means no focus
	Columns          flow.Columns `json:"columns"`         // blank fields come from the variant
	SplitQuotedLists bool         `json:"split_quoted_lists,omitempty"`
	Refresh          bool         `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	ShowWeights bool     `json:"show_weights,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID string

	// Graph is the built flow graph.
	Graph flow.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Countries and Categories are the retained keys in rank order.
	// Countries is empty under focus.
	Countries  []flow.KeyCount
	Categories []flow.KeyCount

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records           int
	Filtered          int
	Exploded          int
	Retained          int
	NodeCount         int
	EdgeCount         int
	TotalWeight       int
	Crossings         int
	WeightedCrossings int
	BuildTime         time.Duration
	RenderTime        time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return tferrors.New(tferrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVariant checks that a variant name is known.
func ValidateVariant(name string) error {
	if _, ok := flow.LookupVariant(name); ok {
		return nil
	}
	names := make([]string, 0, 2)
	for _, v := range flow.Variants() {
		names = append(names, v.Name)
	}
	return tferrors.New(tferrors.ErrCodeInvalidVariant,
		"invalid variant: %q (must be one of: %s)", name, strings.Join(names, ", "))
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// DefaultOptions returns the options of a default run: the disciplines
// variant with both cutoffs at 12 and no focus.
func DefaultOptions() Options {
	return Options{
		Variant:       DefaultVariant,
		TopCountries:  DefaultTopCountries,
		TopCategories: DefaultTopCategories,
	}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults to the
// variant, columns, formats and logger. Cutoffs are taken as given: zero is
// a valid cutoff, so start from [DefaultOptions] for the default of 12.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Variant == "" {
		o.Variant = DefaultVariant
	}
	if err := ValidateVariant(o.Variant); err != nil {
		return err
	}
	if err := tferrors.ValidateTopN("top_countries", o.TopCountries); err != nil {
		return err
	}
	if err := tferrors.ValidateTopN("top_categories", o.TopCategories); err != nil {
		return err
	}
	if err := tferrors.ValidateFocus(o.Focus); err != nil {
		return err
	}

	v, _ := flow.LookupVariant(o.Variant)
	o.Columns = mergeColumns(o.Columns, v.Columns)
	for _, c := range []string{o.Columns.Country, o.Columns.Category, o.Columns.Subgroup} {
		if err := tferrors.ValidateColumnName(c); err != nil {
			return err
		}
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FocusValue returns the focus as a [flow.Focus].
func (o *Options) FocusValue() flow.Focus {
	if o.Focus == "" {
		return flow.NoFocus()
	}
	return flow.FocusOn(o.Focus)
}

// FlowOptions returns the core options of the run. Call
// ValidateAndSetDefaults first.
func (o *Options) FlowOptions() flow.Options {
	v, ok := flow.LookupVariant(o.Variant)
	if !ok {
		v, _ = flow.LookupVariant(DefaultVariant)
	}
	opts := v.Options()
	opts.Columns = mergeColumns(o.Columns, v.Columns)
	opts.TopCountries = o.TopCountries
	opts.TopCategories = o.TopCategories
	opts.Focus = o.FocusValue()
	opts.SplitQuotedLists = o.SplitQuotedLists
	return opts
}

// GraphKeyOpts returns cache key options for graph building.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Variant:          o.Variant,
		TopCountries:     o.TopCountries,
		TopCategories:    o.TopCategories,
		Focus:            o.Focus,
		FocusActive:      o.Focus != "",
		SplitQuotedLists: o.SplitQuotedLists,
		CountryColumn:    o.Columns.Country,
		CategoryColumn:   o.Columns.Category,
		SubgroupColumn:   o.Columns.Subgroup,
	}
}

// artifactKey returns the cache key of one rendered format. Render options
// are folded into the graph hash so that every artifact key covers them.
func (o *Options) artifactKey(k cache.Keyer, graphHash, format string) string {
	h := cache.Hash(fmt.Appendf(nil, "%s\x00%s\x00%t", graphHash, o.Title, o.ShowWeights))
	return k.ArtifactKey(h, format)
}

func mergeColumns(c, defaults flow.Columns) flow.Columns {
	if c.Country == "" {
		c.Country = defaults.Country
	}
	if c.Category == "" {
		c.Category = defaults.Category
	}
	if c.Subgroup == "" {
		c.Subgroup = defaults.Subgroup
	}
	return c
}
