package heatmap

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/stress"
)

// Option configures a [Widget] at construction.
type Option func(*config)

type config struct {
	palettes   *palette.Registry
	palette    string
	pixelRatio float64
	logger     *log.Logger
	seed       uint64
	seeded     bool
	nR, nTheta int
}

// WithPalettes sets the registry palette names are resolved against.
// Defaults to [palette.Default].
func WithPalettes(reg *palette.Registry) Option {
	return func(c *config) { c.palettes = reg }
}

// WithPalette sets the initial palette name. Defaults to viridis.
func WithPalette(name string) Option {
	return func(c *config) { c.palette = name }
}

// WithPixelRatio sets the number of physical pixels per logical unit.
// Defaults to 1.
func WithPixelRatio(ratio float64) Option {
	return func(c *config) { c.pixelRatio = ratio }
}

// WithLogger sets the logger rejected points are reported to.
// Defaults to [log.Default].
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSeed makes the initial random grid reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed, c.seeded = seed, true }
}

// WithDivisions sets the divisions of the initial random grid.
// Defaults to 50×50.
func WithDivisions(nR, nTheta int) Option {
	return func(c *config) { c.nR, c.nTheta = nR, nTheta }
}

// Widget is a heatmap bound to a drawing surface. It is not safe for
// concurrent use; each widget exclusively owns its surface.
type Widget struct {
	surface  canvas.Surface
	layout   Layout
	ratio    float64
	palettes *palette.Registry
	logger   *log.Logger

	paletteName string
	samples     []stress.Sample
	nR, nTheta  int
	points      []stress.Point

	frame Frame
}

// New binds a widget to the surface registered as surfaceID on host, sizes
// the surface for a width×height logical area, seeds a random grid and draws
// the first frame.
func New(host canvas.Host, surfaceID string, width, height float64, opts ...Option) (*Widget, error) {
	cfg := config{
		palette:    palette.DefaultName,
		pixelRatio: 1,
		nR:         stress.DefaultDivisions,
		nTheta:     stress.DefaultDivisions,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.palettes == nil {
		cfg.palettes = palette.Default()
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	if !(cfg.pixelRatio > 0) || math.IsInf(cfg.pixelRatio, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pixel ratio must be positive, got %v", cfg.pixelRatio)
	}
	if err := errors.ValidateDivisions(cfg.nR, cfg.nTheta); err != nil {
		return nil, err
	}

	layout, err := NewLayout(width, height)
	if err != nil {
		return nil, err
	}
	surface, err := host.Surface(surfaceID)
	if err != nil {
		return nil, err
	}

	surface.Resize(int(math.Ceil(width*cfg.pixelRatio)), int(math.Ceil(height*cfg.pixelRatio)))
	if cfg.pixelRatio != 1 {
		surface.Scale(cfg.pixelRatio, cfg.pixelRatio)
	}

	var rng *rand.Rand
	if cfg.seeded {
		rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed^0xdeadbeef))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := &Widget{
		surface:     surface,
		layout:      layout,
		ratio:       cfg.pixelRatio,
		palettes:    cfg.palettes,
		logger:      cfg.logger,
		paletteName: cfg.palette,
		samples:     stress.RandomGrid(cfg.nR, cfg.nTheta, rng),
		nR:          cfg.nR,
		nTheta:      cfg.nTheta,
	}
	if _, err := w.Draw(); err != nil {
		return nil, err
	}
	return w, nil
}

// SetColorTable switches the active palette and redraws. The name is not
// checked here; an unknown name fails the redraw with INVALID_PALETTE.
func (w *Widget) SetColorTable(name string) error {
	w.paletteName = name
	_, err := w.Draw()
	return err
}

// AddPoint appends an annotated point and redraws. R is not range-checked
// here; points outside [0, 3] are rejected when drawn.
func (w *Widget) AddPoint(r, theta float64) error {
	w.points = append(w.points, stress.Point{R: r, Theta: theta})
	_, err := w.Draw()
	return err
}

// SetData replaces the sample grid and its divisions and redraws. The number
// of samples is not checked against the divisions; a mismatch only shifts
// cells. Divisions must be positive.
func (w *Widget) SetData(samples []stress.Sample, nR, nTheta int) error {
	if err := errors.ValidateDivisions(nR, nTheta); err != nil {
		return err
	}
	w.samples = slices.Clone(samples)
	w.nR, w.nTheta = nR, nTheta
	_, err := w.Draw()
	return err
}

// ScaleX maps R to a logical x coordinate.
func (w *Widget) ScaleX(r float64) float64 { return w.layout.ScaleX(r) }

// ScaleY maps theta to a logical y coordinate.
func (w *Widget) ScaleY(theta float64) float64 { return w.layout.ScaleY(theta) }

// Color returns the active palette's colour for value.
func (w *Widget) Color(value float64) (string, error) {
	scheme, err := w.palettes.Resolve(w.paletteName)
	if err != nil {
		return "", err
	}
	return scheme.At(value), nil
}

// Layout returns the widget's logical geometry.
func (w *Widget) Layout() Layout { return w.layout }

// PixelRatio returns the physical pixels per logical unit.
func (w *Widget) PixelRatio() float64 { return w.ratio }

// Palette returns the active palette name.
func (w *Widget) Palette() string { return w.paletteName }

// Points returns a copy of the annotated points in insertion order.
func (w *Widget) Points() []stress.Point { return slices.Clone(w.points) }

// Divisions returns the current grid divisions.
func (w *Widget) Divisions() (nR, nTheta int) { return w.nR, w.nTheta }

// Frame returns the report of the last successful draw.
func (w *Widget) Frame() Frame { return w.frame.clone() }
