package pipeline

import (
	"context"

	"github.com/laminagraph/lamina/pkg/errors"
	"github.com/laminagraph/lamina/pkg/layout"
	"github.com/laminagraph/lamina/pkg/render"
)

// Render generates output artifacts in the requested formats. The graph must
// already be laid out; the JSON artifact is the canonical laid out document,
// DOT carries the computed geometry as Graphviz attributes, and SVG/PNG are
// rasterized from the DOT form.
func Render(ctx context.Context, g *layout.Graph, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = encodeGraph(g)
		case FormatDOT:
			data = []byte(render.ToDOT(g))
		case FormatSVG:
			data, err = render.SVG(ctx, render.ToDOT(g))
		case FormatPNG:
			data, err = render.PNG(ctx, render.ToDOT(g))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
