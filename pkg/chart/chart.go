// Package chart computes the data behind the simpler sibling charts of the
// flow graph: a per-country bar chart and a numeric scatter plot.
//
// Both read the same raw records as package flow and honour the same
// shared [flow.Focus], so a country selected in one chart restricts the
// others on their next recomputation.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tierflow/pkg/flow"
)

// Bar is one country bar.
type Bar struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
	// Focused marks the bar of the focused country.
	Focused bool `json:"focused,omitempty"`
}

// CountryBars counts records per sanitized country. Without a focus the
// top-n countries are returned in rank order; with a focus only the
// focused country remains, and none when it has no records.
func CountryBars(records []flow.RawRecord, cols flow.Columns, fb flow.Fallbacks, n int, focus flow.Focus) []Bar {
	cleaned := flow.SanitizeAll(records, cols, fb)
	country := func(r flow.CleanedRecord) string { return r.Country }

	var sel flow.Selection
	if focus.Active() {
		sel = flow.TopN(cleaned, country, len(cleaned))
	} else {
		sel = flow.TopN(cleaned, country, n)
	}

	bars := make([]Bar, 0, sel.Len())
	for _, kc := range sel.Ranked {
		if !focus.Matches(kc.Key) {
			continue
		}
		bars = append(bars, Bar{Country: kc.Key, Count: kc.Count, Focused: focus.Active()})
	}
	return bars
}

// MaxCount returns the largest bar count, or 0 for no bars.
func MaxCount(bars []Bar) int {
	m := 0
	for _, b := range bars {
		m = max(m, b.Count)
	}
	return m
}

// Point is one scatter point.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Points extracts (x, y) pairs from two numeric columns. Values that do not
// parse as finite numbers count as null and drop their row. labelColumn may
// be empty; blank labels stay blank.
func Points(records []flow.RawRecord, xColumn, yColumn, labelColumn string) []Point {
	var pts []Point
	for _, r := range records {
		x, ok := Numeric(r[xColumn])
		if !ok {
			continue
		}
		y, ok := Numeric(r[yColumn])
		if !ok {
			continue
		}
		var label string
		if labelColumn != "" {
			label = strings.TrimSpace(flow.Coerce(r[labelColumn]))
		}
		pts = append(pts, Point{Label: label, X: x, Y: y})
	}
	return pts
}

// Numeric coerces a loosely-typed value to a finite float64.
func Numeric(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		s := strings.TrimSpace(flow.Coerce(v))
		if s == "" {
			return 0, false
		}
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
