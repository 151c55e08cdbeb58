package sink

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/heatmap"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/scene"
)

// DefaultBackground is painted behind SVG and PNG output.
const DefaultBackground = "#ffffff"

const surfaceID = "scene"

// Option configures every sink.
type Option func(*options)

type options struct {
	palettes   *palette.Registry
	logger     *log.Logger
	background string
	ops        bool
}

// WithPalettes resolves palette names against reg instead of the built-ins.
func WithPalettes(reg *palette.Registry) Option { return func(o *options) { o.palettes = reg } }

// WithLogger receives the widget's diagnostics (rejected points).
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithBackground sets the SVG and PNG background. Empty means transparent.
func WithBackground(color string) Option { return func(o *options) { o.background = color } }

// WithOps includes every recorded drawing call in JSON output.
func WithOps() Option { return func(o *options) { o.ops = true } }

func newOptions(opts []Option) options {
	o := options{background: DefaultBackground}
	for _, opt := range opts {
		opt(&o)
	}
	if o.palettes == nil {
		o.palettes = palette.Default()
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Draw replays s onto surface and returns the final frame.
func Draw(s *scene.Scene, surface canvas.Surface, opts ...Option) (heatmap.Frame, error) {
	return draw(s, surface, newOptions(opts))
}

func draw(s *scene.Scene, surface canvas.Surface, o options) (heatmap.Frame, error) {
	host := canvas.NewRegistry()
	host.Register(surfaceID, surface)

	w, err := heatmap.New(host, surfaceID, s.Width, s.Height,
		heatmap.WithPalettes(o.palettes),
		heatmap.WithPalette(s.Palette),
		heatmap.WithPixelRatio(s.PixelRatio),
		heatmap.WithSeed(s.Seed),
		heatmap.WithDivisions(s.RDivisions, s.ThetaDivisions),
		heatmap.WithLogger(o.logger),
	)
	if err != nil {
		return heatmap.Frame{}, err
	}
	if s.HasData() {
		if err := w.SetData(s.Data(), s.RDivisions, s.ThetaDivisions); err != nil {
			return heatmap.Frame{}, err
		}
	}
	for _, p := range s.Points {
		if err := w.AddPoint(p.R, p.Theta); err != nil {
			return heatmap.Frame{}, err
		}
	}
	return w.Frame(), nil
}
