package pipeline

import (
	"context"

	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/scene"
	"github.com/matzehuels/stressmap/pkg/sink"
)

// Render produces one format without caching.
func Render(ctx context.Context, s *scene.Scene, format string, opts ...sink.Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, opts...)
	case FormatPNG:
		return sink.RenderPNG(s, opts...)
	case FormatPDF:
		return sink.RenderPDF(ctx, s, opts...)
	case FormatJSON:
		return sink.RenderJSON(s, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
