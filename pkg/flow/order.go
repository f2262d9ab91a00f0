package flow

import (
	"slices"

	tferrors "github.com/matzehuels/tierflow/pkg/errors"
)

// OrderNodes collects the distinct endpoint labels of edges and orders them
// tier by tier (country, category, subgroup), alphabetically within a tier.
// Labels without a tier prefix sort after the subgroup tier.
func OrderNodes(edges []Edge) []Label {
	var buckets [tierCount + 1][]Label
	seen := make(map[Label]struct{}, len(edges))

	collect := func(l Label) {
		if _, ok := seen[l]; ok {
			return
		}
		seen[l] = struct{}{}
		t, ok := l.Tier()
		if !ok {
			buckets[tierCount] = append(buckets[tierCount], l)
			return
		}
		buckets[t] = append(buckets[t], l)
	}
	for _, e := range edges {
		collect(e.Source)
		collect(e.Target)
	}

	nodes := make([]Label, 0, len(seen))
	for _, b := range buckets {
		slices.Sort(b)
		nodes = append(nodes, b...)
	}
	return nodes
}

// PosMap maps every label to its position in nodes.
func PosMap(nodes []Label) map[Label]int {
	m := make(map[Label]int, len(nodes))
	for i, n := range nodes {
		m[n] = i
	}
	return m
}

// Resolve orders the edge endpoints with [OrderNodes] and rewrites every
// edge as an index triple. An endpoint without an index means the pipeline
// is broken; Resolve then returns an INTERNAL_ERROR and no graph.
func Resolve(edges []Edge) (Graph, error) {
	nodes := OrderNodes(edges)
	pos := PosMap(nodes)

	links := make([]Link, len(edges))
	for i, e := range edges {
		src, okS := pos[e.Source]
		dst, okD := pos[e.Target]
		if !okS || !okD {
			return Graph{}, tferrors.New(tferrors.ErrCodeInternal,
				"unresolved edge endpoint %q -> %q", e.Source, e.Target)
		}
		links[i] = Link{Source: src, Target: dst, Weight: e.Weight}
	}
	return Graph{Nodes: nodes, Links: links}, nil
}
