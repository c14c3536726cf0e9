package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/render"
	"github.com/matzehuels/c4dgml/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. The DOT source
// and SVG are produced at most once and shared by the formats derived from
// them.
func Render(ctx context.Context, g dgml.DirectedGraph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var (
		dot string
		svg []byte
	)
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}
	svgImage := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dotSource())
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDGML:
			data, err = dgml.MarshalXML(g)
		case FormatJSON:
			data, err = dgml.MarshalJSON(g)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = svgImage()
		case FormatPNG:
			if data, err = svgImage(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgImage(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
