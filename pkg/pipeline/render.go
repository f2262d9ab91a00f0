package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/graph"
	"github.com/matzehuels/tierflow/pkg/observability"
	"github.com/matzehuels/tierflow/pkg/render/nodelink"
)

// Render produces every format in opts.Formats from g without caching.
func Render(ctx context.Context, g flow.Graph, opts Options) (out map[string][]byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	dot := nodelink.ToDOT(g, nodelink.Options{Title: opts.Title, ShowWeights: opts.ShowWeights})
	out = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}
