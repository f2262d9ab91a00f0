package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tierflow/pkg/flow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Title is drawn above the diagram when non-empty.
	Title string
	// ShowWeights labels every link with its weight.
	ShowWeights bool
	// MaxPenWidth is the stroke width of the heaviest link. Zero means 12.
	MaxPenWidth float64
}

const (
	defaultMaxPenWidth = 12.0
	minPenWidth        = 1.0
)

// TierColors are the fill colours of the three tiers.
var TierColors = [...]string{
	flow.TierCountry:  "#4C78A8",
	flow.TierCategory: "#F58518",
	flow.TierSubgroup: "#54A24B",
}

// ToDOT converts a flow graph to Graphviz DOT. Node identifiers are the
// prefixed labels, so equal names in different tiers never collide; the
// visible label is the bare name.
func ToDOT(g flow.Graph, opts Options) string {
	maxPen := opts.MaxPenWidth
	if maxPen <= 0 {
		maxPen = defaultMaxPenWidth
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#88888899\"];\n")
	buf.WriteString("  ranksep=2.0;\n")
	buf.WriteString("  nodesep=0.2;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  labelloc=t;\n  label=%q;\n", opts.Title)
	}

	for t := flow.TierCountry; t <= flow.TierSubgroup; t++ {
		nodes := g.TierNodes(t)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph %s {\n    rank=same;\n", t)
		for _, n := range nodes {
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", string(n), n.Name(), TierColors[t])
		}
		buf.WriteString("  }\n")
	}

	maxW := 0
	for _, l := range g.Links {
		maxW = max(maxW, l.Weight)
	}
	if len(g.Links) > 0 {
		buf.WriteString("\n")
	}
	for _, l := range g.Links {
		attrs := []string{
			"penwidth=" + strconv.FormatFloat(penWidth(l.Weight, maxW, maxPen), 'f', 2, 64),
			fmt.Sprintf("tooltip=\"%d\"", l.Weight),
		}
		if opts.ShowWeights {
			attrs = append(attrs, fmt.Sprintf("label=\"%d\"", l.Weight))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n",
			string(g.Nodes[l.Source]), string(g.Nodes[l.Target]), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// penWidth scales w linearly into [minPenWidth, maxPen].
func penWidth(w, maxW int, maxPen float64) float64 {
	if maxW <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPen-minPenWidth)*float64(w)/float64(maxW)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
