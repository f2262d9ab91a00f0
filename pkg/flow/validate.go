package flow

import "errors"

var (
	// ErrDuplicateNode is returned by [Graph.Validate] when a label occurs twice.
	ErrDuplicateNode = errors.New("duplicate node label")

	// ErrLinkOutOfRange is returned by [Graph.Validate] when a link index is
	// not a position in Nodes.
	ErrLinkOutOfRange = errors.New("link index out of range")

	// ErrOrphanNode is returned by [Graph.Validate] when a node is not
	// referenced by any link.
	ErrOrphanNode = errors.New("node not referenced by any link")

	// ErrNonPositiveWeight is returned by [Graph.Validate] for links whose
	// weight is zero or negative.
	ErrNonPositiveWeight = errors.New("link weight must be positive")

	// ErrDuplicateLink is returned by [Graph.Validate] when the same
	// (source, target) pair appears in two links.
	ErrDuplicateLink = errors.New("duplicate link")
)

// Validate checks the snapshot invariants: unique labels, in-range indices,
// positive weights, no duplicate pairs and no orphan nodes.
// Graphs produced by [Build] always pass.
func (g Graph) Validate() error {
	seen := make(map[Label]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := seen[n]; ok {
			return ErrDuplicateNode
		}
		seen[n] = struct{}{}
	}

	used := make([]bool, len(g.Nodes))
	pairs := make(map[[2]int]struct{}, len(g.Links))
	for _, l := range g.Links {
		if l.Source < 0 || l.Source >= len(g.Nodes) || l.Target < 0 || l.Target >= len(g.Nodes) {
			return ErrLinkOutOfRange
		}
		if l.Weight <= 0 {
			return ErrNonPositiveWeight
		}
		p := [2]int{l.Source, l.Target}
		if _, ok := pairs[p]; ok {
			return ErrDuplicateLink
		}
		pairs[p] = struct{}{}
		used[l.Source], used[l.Target] = true, true
	}
	for _, u := range used {
		if !u {
			return ErrOrphanNode
		}
	}
	return nil
}
