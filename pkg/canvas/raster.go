package canvas

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/stressmap/pkg/fonts"
)

// RasterOption configures a [Raster] surface.
type RasterOption func(*Raster)

// WithRasterBackground sets the colour Clear paints. Empty means transparent.
func WithRasterBackground(color string) RasterOption {
	return func(r *Raster) { r.background = color }
}

// Raster is a [Surface] backed by a fogleman/gg RGBA context.
//
// gg consumes the current path on fill, so FillRect discards any path under
// construction; build paths and fill rectangles in separate steps.
type Raster struct {
	dc         *gg.Context
	background string

	st    state
	scale float64 // uniform part of the transform, applied to line widths
	stack []rasterFrame

	face func(size float64, bold bool) (font.Face, error)
	err  error // first text error, reported by EncodePNG
}

type rasterFrame struct {
	st    state
	scale float64
}

// NewRaster creates a 300×150 raster surface.
func NewRaster(opts ...RasterOption) *Raster {
	r := &Raster{face: fonts.Face}
	for _, opt := range opts {
		opt(r)
	}
	r.Resize(300, 150)
	return r
}

func (r *Raster) Resize(width, height int) {
	r.dc = gg.NewContext(max(width, 1), max(height, 1))
	r.st = defaultState()
	r.scale = 1
	r.stack = nil
	r.Clear()
}

func (r *Raster) Size() (int, int) { return r.dc.Width(), r.dc.Height() }

func (r *Raster) Clear() {
	r.dc.Push()
	r.dc.Identity()
	if r.background == "" {
		r.dc.SetRGBA(0, 0, 0, 0)
	} else {
		r.dc.SetHexColor(r.background)
	}
	r.dc.Clear()
	r.dc.Pop()
}

func (r *Raster) Save() {
	r.dc.Push()
	r.stack = append(r.stack, rasterFrame{st: r.st, scale: r.scale})
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.st, r.scale = top.st, top.scale
	r.dc.Pop()
}

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(angle float64)   { r.dc.Rotate(angle) }

func (r *Raster) Scale(sx, sy float64) {
	r.dc.Scale(sx, sy)
	r.scale *= math.Sqrt(math.Abs(sx * sy))
}

func (r *Raster) SetFillColor(color string)      { r.st.fill = color }
func (r *Raster) SetStrokeColor(color string)    { r.st.stroke = color }
func (r *Raster) SetLineWidth(width float64)     { r.st.lineWidth = width }
func (r *Raster) SetFont(f Font)                 { r.st.font = f }
func (r *Raster) SetTextAlign(a TextAlign)       { r.st.align = a }
func (r *Raster) SetTextBaseline(b TextBaseline) { r.st.baseline = b }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.NewSubPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetHexColor(r.st.fill)
	r.dc.Fill()
}

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) Arc(cx, cy, radius, start, end float64) {
	r.dc.DrawArc(cx, cy, radius, start, end)
}

func (r *Raster) Fill() {
	r.dc.SetHexColor(r.st.fill)
	r.dc.FillPreserve()
}

func (r *Raster) Stroke() {
	r.dc.SetHexColor(r.st.stroke)
	r.dc.SetLineWidth(r.st.lineWidth * r.scale)
	r.dc.StrokePreserve()
}

func (r *Raster) FillText(text string, x, y float64) {
	face, err := r.face(r.st.font.Size, r.st.font.Bold)
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("text %q: %w", text, err)
		}
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetHexColor(r.st.fill)
	r.dc.DrawStringAnchored(text, x, y+baselineShift(face, r.st.baseline), alignAnchor(r.st.align), 0)
}

// EncodePNG writes the surface as PNG. It fails without writing if any text
// could not be drawn.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return r.dc.EncodePNG(w)
}

// Image returns the backing image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func alignAnchor(a TextAlign) float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	default:
		return 0
	}
}

// baselineShift returns how far the alphabetic baseline sits below y for b.
func baselineShift(face font.Face, b TextBaseline) float64 {
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	switch b {
	case BaselineTop:
		return ascent
	case BaselineMiddle:
		return (ascent - descent) / 2
	case BaselineBottom:
		return -descent
	default:
		return 0
	}
}
