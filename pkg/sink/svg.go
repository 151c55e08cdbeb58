package sink

import (
	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/scene"
)

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	var svgOpts []canvas.SVGOption
	if o.background != "" {
		svgOpts = append(svgOpts, canvas.WithSVGBackground(o.background))
	}
	svg := canvas.NewSVG(svgOpts...)
	if _, err := draw(s, svg, o); err != nil {
		return nil, err
	}
	return svg.Bytes(), nil
}
