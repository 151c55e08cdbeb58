package heatmap

import (
	"math"
	"strconv"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/stress"
)

const (
	markerRadius = 5.0
	markerFill   = "#ff0000"
	markerStroke = "#000000"
	labelOffset  = 8.0

	axisColor   = "#000000"
	tickLength  = 5.0
	tickGap     = 8.0
	regimeColor = "#333333"
)

var (
	rTicks     = []float64{0, 1, 2, 3}
	thetaTicks = []float64{0, 45, 90, 135, 180}

	tickFont   = canvas.Font{Family: canvas.DefaultFont.Family, Size: 10}
	labelFont  = canvas.Font{Family: canvas.DefaultFont.Family, Size: 12}
	titleFont  = canvas.Font{Family: canvas.DefaultFont.Family, Size: 12, Bold: true}
	regimeFont = canvas.Font{Family: canvas.DefaultFont.Family, Size: 11}
)

// Draw redraws the whole surface from the widget's current state and returns
// a report of the frame. An unknown palette fails before anything is cleared.
func (w *Widget) Draw() (Frame, error) {
	scheme, err := w.palettes.Resolve(w.paletteName)
	if err != nil {
		return Frame{}, err
	}

	w.surface.Clear()

	f := Frame{
		Width:          w.layout.Width,
		Height:         w.layout.Height,
		PixelRatio:     w.ratio,
		Palette:        scheme.Name(),
		RDivisions:     w.nR,
		ThetaDivisions: w.nTheta,
		Markers:        []Marker{},
	}
	f.Cells = w.drawGrid(scheme)
	for i, p := range w.points {
		m, err := w.drawPoint(p)
		if err != nil {
			w.logger.Error("skipping point", "index", i, "r", p.R, "theta", p.Theta, "err", err)
			f.Rejected = append(f.Rejected, Rejection{Index: i, Point: p, Reason: err.Error()})
			continue
		}
		f.Markers = append(f.Markers, m)
	}
	w.drawAxes()
	w.drawTicks()
	w.drawTitles()
	w.drawRegimeLabels()

	w.frame = f
	return f.clone(), nil
}

func (w *Widget) drawGrid(scheme palette.Scheme) int {
	s, l := w.surface, w.layout
	cw, ch := l.CellSize(w.nR, w.nTheta)
	for _, smp := range w.samples {
		x, y := l.ScaleX(smp.R), l.ScaleY(smp.Theta)
		s.SetFillColor(scheme.At(smp.Value))
		s.FillRect(x-cw/2, y-ch/2, cw+1, ch+1)
	}
	return len(w.samples)
}

func (w *Widget) drawPoint(p stress.Point) (Marker, error) {
	regime, err := stress.Classify(p.R)
	if err != nil {
		return Marker{}, err
	}
	s, l := w.surface, w.layout
	x, y := l.ScaleX(p.R), l.ScaleY(p.Theta)

	s.BeginPath()
	s.Arc(x, y, markerRadius, 0, 2*math.Pi)
	s.SetFillColor(markerFill)
	s.Fill()
	s.SetStrokeColor(markerStroke)
	s.SetLineWidth(1)
	s.Stroke()

	label := p.Label()
	s.SetFillColor(axisColor)
	s.SetFont(labelFont)
	s.SetTextAlign(canvas.AlignLeft)
	s.SetTextBaseline(canvas.BaselineMiddle)
	s.FillText(label, x+labelOffset, y)

	return Marker{
		Point:    p,
		Regime:   regime,
		PhiPrime: stress.PhiPrime(p.R, regime),
		X:        x,
		Y:        y,
		Label:    label,
	}, nil
}

// drawAxes strokes the regime dividers at R=1 and R=2 and the left and
// bottom axes.
func (w *Widget) drawAxes() {
	s, l := w.surface, w.layout
	s.SetStrokeColor(axisColor)
	s.SetLineWidth(1)
	s.BeginPath()
	for _, r := range []float64{1, 2} {
		x := l.ScaleX(r)
		s.MoveTo(x, l.Top())
		s.LineTo(x, l.Bottom())
	}
	s.MoveTo(l.Left(), l.Top())
	s.LineTo(l.Left(), l.Bottom())
	s.LineTo(l.Right(), l.Bottom())
	s.Stroke()
}

func (w *Widget) drawTicks() {
	s, l := w.surface, w.layout
	s.SetStrokeColor(axisColor)
	s.SetLineWidth(1)
	s.BeginPath()
	for _, r := range rTicks {
		x := l.ScaleX(r)
		s.MoveTo(x, l.Bottom())
		s.LineTo(x, l.Bottom()+tickLength)
	}
	for _, theta := range thetaTicks {
		y := l.ScaleY(theta)
		s.MoveTo(l.Left()-tickLength, y)
		s.LineTo(l.Left(), y)
	}
	s.Stroke()

	s.SetFillColor(axisColor)
	s.SetFont(tickFont)
	s.SetTextAlign(canvas.AlignCenter)
	s.SetTextBaseline(canvas.BaselineTop)
	for _, r := range rTicks {
		s.FillText(formatTick(r), l.ScaleX(r), l.Bottom()+tickGap)
	}
	s.SetTextAlign(canvas.AlignRight)
	s.SetTextBaseline(canvas.BaselineMiddle)
	for _, theta := range thetaTicks {
		s.FillText(formatTick(theta), l.Left()-tickGap, l.ScaleY(theta))
	}
}

func (w *Widget) drawTitles() {
	s, l := w.surface, w.layout
	s.SetFillColor(axisColor)
	s.SetFont(titleFont)
	s.SetTextAlign(canvas.AlignCenter)
	s.SetTextBaseline(canvas.BaselineTop)
	s.FillText("R", l.Left()+l.GraphWidth/2, l.Bottom()+38)

	s.Save()
	s.Translate(10, l.Top()+l.GraphHeight/2)
	s.Rotate(-math.Pi / 2)
	s.SetTextBaseline(canvas.BaselineMiddle)
	s.FillText("θ (°)", 0, 0)
	s.Restore()
}

func (w *Widget) drawRegimeLabels() {
	s, l := w.surface, w.layout
	s.SetFillColor(regimeColor)
	s.SetFont(regimeFont)
	s.SetTextAlign(canvas.AlignCenter)
	s.SetTextBaseline(canvas.BaselineTop)
	for _, regime := range stress.Regimes {
		s.FillText(regime.Label(), l.ScaleX(regime.Center()), l.Bottom()+24)
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
