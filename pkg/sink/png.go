package sink

import (
	"bytes"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/scene"
)

// RenderPNG renders the scene as PNG at the scene's pixel ratio.
func RenderPNG(s *scene.Scene, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	raster := canvas.NewRaster(canvas.WithRasterBackground(o.background))
	if _, err := draw(s, raster, o); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
