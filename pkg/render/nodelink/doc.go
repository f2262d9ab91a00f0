// Package nodelink renders flow graphs as layered node-link diagrams.
//
// # Overview
//
// A flow graph has three tiers (country, category, subgroup). The diagram
// places each tier in its own Graphviz rank, left to right, and draws one
// link per aggregated edge with a stroke width proportional to its weight.
// Node order inside a rank follows the graph's node order, which is
// alphabetical within each tier.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{ShowWeights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces plain Graphviz source that can be rendered
// in-process via [RenderSVG] or [RenderPNG], or saved and processed with
// external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
