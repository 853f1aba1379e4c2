package pipeline

import (
	"bytes"
	"context"

	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
	pio "github.com/matzehuels/planrep/pkg/io"
	"github.com/matzehuels/planrep/pkg/render"
)

// Render generates the artifacts of x in the requested formats.
func Render(ctx context.Context, x *expansion.Expansion, d *pio.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, x, d, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates one artifact of x.
func RenderFormat(ctx context.Context, x *expansion.Expansion, d *pio.Document, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := pio.WriteExpansion(x, d, &buf); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "render %s", format)
		}
		return buf.Bytes(), nil
	}

	dot := render.ToDOT(x, d, render.Options{Detailed: opts.Detailed, Colored: opts.Colored})

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = render.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = render.RenderPNG(ctx, dot)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}
