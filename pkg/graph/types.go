package graph

import (
	"fmt"

	"github.com/matzehuels/tierflow/pkg/flow"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// =============================================================================
// Graph - Flow Graph Serialization
// =============================================================================

// Graph is the serialization format handed to flow-diagram renderers.
// Links reference nodes by their position in Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is one graph node.
type Node struct {
	Label string `json:"label"`          // Tier-prefixed label, e.g. "C:USA"
	Name  string `json:"name,omitempty"` // Label without prefix
	Tier  string `json:"tier,omitempty"` // "country", "category" or "subgroup"
}

// Link is one weighted connection between node indices.
type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

// =============================================================================
// flow.Graph ↔ Graph Conversion
// =============================================================================

// FromFlow converts a flow graph to its serialization format. Node order
// and link order are preserved.
func FromFlow(g flow.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	for i, l := range g.Nodes {
		n := Node{Label: string(l), Name: l.Name()}
		if t, ok := l.Tier(); ok {
			n.Tier = t.String()
		}
		out.Nodes[i] = n
	}
	for i, l := range g.Links {
		out.Links[i] = Link{Source: l.Source, Target: l.Target, Value: l.Weight}
	}
	return out
}

// ToFlow converts the serialization format back into a flow graph and
// checks the snapshot invariants (see [flow.Graph.Validate]). A non-empty
// tier must name a known tier and agree with the label prefix.
func ToFlow(data Graph) (flow.Graph, error) {
	g := flow.Graph{
		Nodes: make([]flow.Label, len(data.Nodes)),
		Links: make([]flow.Link, len(data.Links)),
	}
	for i, n := range data.Nodes {
		if n.Label == "" {
			return flow.Graph{}, fmt.Errorf("node %d: empty label", i)
		}
		if n.Tier != "" {
			t, ok := flow.ParseTier(n.Tier)
			if !ok {
				return flow.Graph{}, fmt.Errorf("node %d: unknown tier %q", i, n.Tier)
			}
			if lt, ok := flow.Label(n.Label).Tier(); !ok || lt != t {
				return flow.Graph{}, fmt.Errorf("node %d: tier %q does not match label %q", i, n.Tier, n.Label)
			}
		}
		g.Nodes[i] = flow.Label(n.Label)
	}
	for i, l := range data.Links {
		g.Links[i] = flow.Link{Source: l.Source, Target: l.Target, Weight: l.Value}
	}
	if err := g.Validate(); err != nil {
		return flow.Graph{}, err
	}
	return g, nil
}
