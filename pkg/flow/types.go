package flow

import (
	"fmt"
	"strings"
)

// RawRecord is one loosely-typed input row keyed by column name.
// Values may be of any string-coercible type; absent keys and nil values
// are treated as blank.
type RawRecord map[string]any

// Columns maps the three tracked fields onto record keys.
type Columns struct {
	Country  string `toml:"country" json:"country"`
	Category string `toml:"category" json:"category"`
	Subgroup string `toml:"subgroup" json:"subgroup"`
}

// DefaultColumns returns the column names of the athlete datasets the
// built-in variants were written for.
func DefaultColumns() Columns {
	return Columns{Country: "country", Category: "discipline", Subgroup: "gender"}
}

// Fallbacks holds the labels substituted for blank fields.
type Fallbacks struct {
	Country  string
	Category string
	Subgroup string
}

// Fallback labels.
const (
	UnknownCountry    = "Unknown Country"
	UnknownDiscipline = "Unknown Discipline"
	Unknown           = "Unknown"
)

// DefaultFallbacks returns the fallbacks of the discipline chart.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{Country: UnknownCountry, Category: UnknownDiscipline, Subgroup: Unknown}
}

// CleanedRecord is a sanitized record. All fields are non-empty.
type CleanedRecord struct {
	Country     string
	CategoryRaw string
	Subgroup    string
}

// ExplodedRecord carries exactly one atomic category label.
type ExplodedRecord struct {
	Country  string
	Category string
	Subgroup string
}

// Tier is one of the three graph levels.
type Tier int

const (
	TierCountry Tier = iota
	TierCategory
	TierSubgroup
)

// tierCount is the number of tiers; tiers are numbered 0..tierCount-1.
const tierCount = 3

var tierPrefixes = [tierCount]string{"C:", "D:", "G:"}

var tierNames = [tierCount]string{"country", "category", "subgroup"}

// Prefix returns the label prefix of the tier.
func (t Tier) Prefix() string { return tierPrefixes[t] }

// String returns the tier name.
func (t Tier) String() string {
	if t < 0 || int(t) >= tierCount {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier returns the tier with the given name.
func ParseTier(name string) (Tier, bool) {
	for i, n := range tierNames {
		if n == name {
			return Tier(i), true
		}
	}
	return 0, false
}

// Label is a tier-prefixed node identifier, e.g. "C:USA".
type Label string

// NewLabel prefixes value with the tier discriminator.
func NewLabel(t Tier, value string) Label { return Label(t.Prefix() + value) }

// Tier returns the tier encoded in the label prefix.
// Labels without a known prefix report false.
func (l Label) Tier() (Tier, bool) {
	for i, p := range tierPrefixes {
		if strings.HasPrefix(string(l), p) {
			return Tier(i), true
		}
	}
	return 0, false
}

// Name returns the label without its tier prefix.
func (l Label) Name() string {
	if t, ok := l.Tier(); ok {
		return strings.TrimPrefix(string(l), t.Prefix())
	}
	return string(l)
}

// Edge is a weighted connection between two labels.
type Edge struct {
	Source Label
	Target Label
	Weight int
}

// Link is an edge whose endpoints have been resolved to node indices.
type Link struct {
	Source int
	Target int
	Weight int
}

// Graph is the immutable snapshot handed to a renderer.
// Every index in Links is a valid position in Nodes and every node is
// referenced by at least one link.
type Graph struct {
	Nodes []Label
	Links []Link
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// TierNodes returns the labels of one tier in graph order.
func (g Graph) TierNodes(t Tier) []Label {
	var out []Label
	for _, n := range g.Nodes {
		if nt, ok := n.Tier(); ok && nt == t {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the links with their endpoints expanded back to labels.
func (g Graph) Edges() []Edge {
	out := make([]Edge, len(g.Links))
	for i, l := range g.Links {
		out[i] = Edge{Source: g.Nodes[l.Source], Target: g.Nodes[l.Target], Weight: l.Weight}
	}
	return out
}

// TotalWeight returns the sum of all link weights.
func (g Graph) TotalWeight() int {
	total := 0
	for _, l := range g.Links {
		total += l.Weight
	}
	return total
}
