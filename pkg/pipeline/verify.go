package pipeline

import (
	"github.com/matzehuels/tierflow/pkg/dag"
	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
)

// Layering describes a graph as drawn: one row per tier in node order.
type Layering struct {
	Rows              map[int][]string
	Crossings         int
	WeightedCrossings int
}

// Verify checks the structural invariants of a built graph and measures
// the link crossings of its tier ordering. A failure here means the build
// itself is broken, so every error carries the internal error code.
func Verify(g flow.Graph) (Layering, error) {
	if err := g.Validate(); err != nil {
		return Layering{}, tferrors.Wrap(tferrors.ErrCodeInternal, err, "invalid flow graph")
	}
	d, err := dag.FromFlow(g)
	if err != nil {
		return Layering{}, tferrors.Wrap(tferrors.ErrCodeInternal, err, "layer flow graph")
	}
	if err := d.Validate(); err != nil {
		return Layering{}, tferrors.Wrap(tferrors.ErrCodeInternal, err, "layered graph")
	}
	rows := d.RowOrders()
	return Layering{
		Rows:              rows,
		Crossings:         dag.CountCrossings(d, rows),
		WeightedCrossings: dag.WeightedCrossings(d, rows),
	}, nil
}
