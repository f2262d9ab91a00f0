// Package render turns flow graphs into visual output.
//
// Layout geometry is never computed here. The [nodelink] subpackage emits a
// Graphviz description with one rank per tier and lets Graphviz place the
// nodes and route the links.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/tierflow/pkg/render/nodelink
package render
