package heatmap

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/stress"
)

func newTestWidget(t *testing.T, opts ...Option) (*Widget, *canvas.Recorder) {
	t.Helper()
	rec := canvas.NewRecorder()
	reg := canvas.NewRegistry()
	reg.Register("chart", rec)

	opts = append([]Option{WithSeed(42), WithLogger(log.New(io.Discard))}, opts...)
	w, err := New(reg, "chart", 600, 400, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, rec
}

func TestNewDefaults(t *testing.T) {
	w, rec := newTestWidget(t)

	if got := w.Palette(); got != palette.Viridis {
		t.Errorf("Palette() = %q, want viridis", got)
	}
	if nR, nTheta := w.Divisions(); nR != 50 || nTheta != 50 {
		t.Errorf("Divisions() = %d×%d, want 50×50", nR, nTheta)
	}
	f := w.Frame()
	if f.Cells != 51*51 {
		t.Errorf("Cells = %d, want %d", f.Cells, 51*51)
	}
	if len(f.Markers) != 0 || len(f.Rejected) != 0 {
		t.Errorf("new widget should have no markers, got %+v", f)
	}
	if n := rec.Count(canvas.OpFillRect); n != 51*51 {
		t.Errorf("fillRect calls = %d, want %d", n, 51*51)
	}

	texts := strings.Join(rec.Texts(), "|")
	for _, want := range []string{"Normal", "Strike slip", "Reverse", "R", "θ (°)", "0", "45", "90", "135", "180"} {
		if !strings.Contains(texts, want) {
			t.Errorf("frame text missing %q", want)
		}
	}

	l := w.Layout()
	if l.GraphWidth != 540 || l.GraphHeight != 330 {
		t.Errorf("graph area = %v×%v, want 540×330", l.GraphWidth, l.GraphHeight)
	}
}

func TestNewErrors(t *testing.T) {
	reg := canvas.NewRegistry()
	reg.Register("chart", canvas.NewRecorder())
	quiet := WithLogger(log.New(io.Discard))

	tests := []struct {
		name   string
		id     string
		width  float64
		height float64
		opts   []Option
		code   errors.Code
	}{
		{"unknown surface", "missing", 600, 400, nil, errors.ErrCodeSurfaceNotFound},
		{"too narrow", "chart", 60, 400, nil, errors.ErrCodeInvalidInput},
		{"too short", "chart", 600, 70, nil, errors.ErrCodeInvalidInput},
		{"zero ratio", "chart", 600, 400, []Option{WithPixelRatio(0)}, errors.ErrCodeInvalidInput},
		{"bad divisions", "chart", 600, 400, []Option{WithDivisions(0, 10)}, errors.ErrCodeInvalidInput},
		{"unknown palette", "chart", 600, 400, []Option{WithPalette("magma")}, errors.ErrCodeInvalidPalette},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(reg, tt.id, tt.width, tt.height, append(tt.opts, quiet)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPixelRatio(t *testing.T) {
	w, rec := newTestWidget(t, WithPixelRatio(2))
	if pw, ph := rec.Size(); pw != 1200 || ph != 800 {
		t.Errorf("surface size = %d×%d, want 1200×800", pw, ph)
	}
	// Geometry stays in logical units.
	if got := w.ScaleX(3); got != 580 {
		t.Errorf("ScaleX(3) = %v, want 580", got)
	}

	_, rec = newTestWidget(t, WithPixelRatio(1.5))
	if pw, ph := rec.Size(); pw != 900 || ph != 600 {
		t.Errorf("surface size = %d×%d, want 900×600", pw, ph)
	}
}

func TestScaleMonotonic(t *testing.T) {
	w, _ := newTestWidget(t)

	if got := w.ScaleX(0); got != MarginLeft {
		t.Errorf("ScaleX(0) = %v, want %v", got, MarginLeft)
	}
	if got := w.ScaleY(0); got != 350 {
		t.Errorf("ScaleY(0) = %v, want 350", got)
	}
	if got := w.ScaleY(180); got != MarginTop {
		t.Errorf("ScaleY(180) = %v, want %v", got, MarginTop)
	}

	prevX, prevY := w.ScaleX(0), w.ScaleY(0)
	for i := 1; i <= 300; i++ {
		r := float64(i) / 100
		theta := float64(i) * 0.6
		x, y := w.ScaleX(r), w.ScaleY(theta)
		if x <= prevX {
			t.Fatalf("ScaleX not increasing at R=%v: %v <= %v", r, x, prevX)
		}
		if y >= prevY {
			t.Fatalf("ScaleY not decreasing at theta=%v: %v >= %v", theta, y, prevY)
		}
		prevX, prevY = x, y
	}
}

func TestAddPoint(t *testing.T) {
	var logs bytes.Buffer
	w, rec := newTestWidget(t, WithLogger(log.New(&logs)))

	if err := w.AddPoint(1.2, 90); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if n := len(w.Frame().Markers); n != 1 {
		t.Fatalf("markers = %d, want 1", n)
	}
	if n := rec.Count(canvas.OpArc); n != 1 {
		t.Errorf("arc calls = %d, want 1", n)
	}

	for _, r := range []float64{-0.1, 3.01} {
		if err := w.AddPoint(r, 45); err != nil {
			t.Fatalf("AddPoint(%v): %v", r, err)
		}
		f := w.Frame()
		if len(f.Markers) != 1 {
			t.Errorf("AddPoint(%v) changed marker count to %d", r, len(f.Markers))
		}
		if rec.Count(canvas.OpArc) != 1 {
			t.Errorf("AddPoint(%v) drew a marker", r)
		}
	}

	f := w.Frame()
	if len(f.Rejected) != 2 || f.Rejected[0].Index != 1 || f.Rejected[1].Index != 2 {
		t.Errorf("Rejected = %+v, want points 1 and 2", f.Rejected)
	}
	if !strings.Contains(logs.String(), "skipping point") {
		t.Errorf("expected rejection to be logged, got %q", logs.String())
	}
	if n := len(w.Points()); n != 3 {
		t.Errorf("Points() = %d, want 3 (rejected points are kept)", n)
	}
	// Rendering continues after a rejected point.
	if !slices.Contains(rec.Texts(), "Reverse") {
		t.Error("regime labels missing after rejected point")
	}
}

func TestSetData(t *testing.T) {
	w, rec := newTestWidget(t)

	samples := stress.Grid(2, 3, func(float64, float64) float64 { return 0 })
	if err := w.SetData(samples, 2, 3); err != nil {
		t.Fatalf("SetData: %v", err)
	}

	f := w.Frame()
	if f.Cells != 12 || f.RDivisions != 2 || f.ThetaDivisions != 3 {
		t.Errorf("frame = %d cells %d×%d, want 12 cells 2×3", f.Cells, f.RDivisions, f.ThetaDivisions)
	}

	var rects []canvas.Op
	for _, op := range rec.Ops() {
		if op.Name == canvas.OpFillRect {
			rects = append(rects, op)
		}
	}
	if len(rects) != 12 {
		t.Fatalf("fillRect calls = %d, want 12", len(rects))
	}
	for _, op := range rects {
		if op.Fill != "#440154" {
			t.Errorf("cell fill = %s, want only the new grid's colour #440154", op.Fill)
		}
	}

	// Cells are one pixel larger than the cell span and centred on the sample.
	first := rects[0]
	cw, ch := 540.0/2, 330.0/3
	want := []float64{MarginLeft - cw/2, 350 - ch/2, cw + 1, ch + 1}
	for i := range want {
		if first.Args[i] != want[i] {
			t.Errorf("first cell = %v, want %v", first.Args, want)
			break
		}
	}
}

func TestSetDataMismatchedLength(t *testing.T) {
	w, _ := newTestWidget(t)
	samples := stress.Grid(4, 4, func(float64, float64) float64 { return 0.5 })
	if err := w.SetData(samples[:7], 4, 4); err != nil {
		t.Fatalf("SetData with short grid: %v", err)
	}
	if got := w.Frame().Cells; got != 7 {
		t.Errorf("Cells = %d, want 7", got)
	}
}

func TestSetDataInvalidDivisions(t *testing.T) {
	w, _ := newTestWidget(t)
	before := w.Frame()

	err := w.SetData(nil, 0, 10)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("SetData error = %v, want INVALID_INPUT", err)
	}
	if nR, nTheta := w.Divisions(); nR != 50 || nTheta != 50 {
		t.Errorf("divisions changed to %d×%d", nR, nTheta)
	}
	if w.Frame().Cells != before.Cells {
		t.Error("failed SetData should not redraw")
	}
}

func TestSetColorTable(t *testing.T) {
	w, rec := newTestWidget(t)

	if err := w.SetColorTable(palette.BW); err != nil {
		t.Fatalf("SetColorTable(bw): %v", err)
	}
	if got, _ := w.Color(0.5); got != "#808080" {
		t.Errorf("Color(0.5) = %s, want #808080", got)
	}
	if w.Frame().Palette != palette.BW {
		t.Errorf("frame palette = %s, want bw", w.Frame().Palette)
	}

	before := rec.Ops()
	err := w.SetColorTable("magma")
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Fatalf("SetColorTable(magma) error = %v, want INVALID_PALETTE", err)
	}
	if _, err := w.Color(0.5); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("Color with unknown palette error = %v", err)
	}
	if len(rec.Ops()) != len(before) {
		t.Error("unknown palette should leave the surface untouched")
	}

	if err := w.SetColorTable(palette.Plasma); err != nil {
		t.Fatalf("SetColorTable(plasma): %v", err)
	}
	if got, _ := w.Color(0); got != "#0d0887" {
		t.Errorf("Color(0) = %s, want #0d0887", got)
	}
}

func TestInjectedPalettes(t *testing.T) {
	mono, err := palette.NewScheme("mono", "#000000", "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	reg, err := palette.NewRegistry(mono)
	if err != nil {
		t.Fatal(err)
	}

	w, _ := newTestWidget(t, WithPalettes(reg), WithPalette("mono"))
	if got, _ := w.Color(1); got != "#ff0000" {
		t.Errorf("Color(1) = %s, want #ff0000", got)
	}
	if err := w.SetColorTable(palette.Viridis); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("viridis should be unknown to an injected registry, got %v", err)
	}
}

func TestThreeRegimes(t *testing.T) {
	w, rec := newTestWidget(t)

	points := []struct {
		r, theta float64
		regime   stress.Regime
		phi      float64
		label    string
	}{
		{0.5, 60, stress.Normal, 0.5, "(R=0.5, θ=60°)"},
		{1.5, 120, stress.StrikeSlip, 0.5, "(R=1.5, θ=120°)"},
		{2.5, 30, stress.Reverse, 0.5, "(R=2.5, θ=30°)"},
	}
	for _, p := range points {
		if err := w.AddPoint(p.r, p.theta); err != nil {
			t.Fatalf("AddPoint(%v, %v): %v", p.r, p.theta, err)
		}
	}

	f := w.Frame()
	if f.Cells != 51*51 {
		t.Errorf("Cells = %d, want %d", f.Cells, 51*51)
	}
	if len(f.Markers) != len(points) {
		t.Fatalf("markers = %d, want %d", len(f.Markers), len(points))
	}
	for i, p := range points {
		m := f.Markers[i]
		if m.Regime != p.regime {
			t.Errorf("marker %d regime = %v, want %v", i, m.Regime, p.regime)
		}
		if m.PhiPrime != p.phi {
			t.Errorf("marker %d phi' = %v, want %v", i, m.PhiPrime, p.phi)
		}
		if m.Label != p.label {
			t.Errorf("marker %d label = %q, want %q", i, m.Label, p.label)
		}
		if m.X != w.ScaleX(p.r) || m.Y != w.ScaleY(p.theta) {
			t.Errorf("marker %d at (%v, %v), want (%v, %v)", i, m.X, m.Y, w.ScaleX(p.r), w.ScaleY(p.theta))
		}
		if !slices.Contains(rec.Texts(), p.label) {
			t.Errorf("label %q not drawn", p.label)
		}
	}
	if n := rec.Count(canvas.OpArc); n != 3 {
		t.Errorf("arc calls = %d, want 3", n)
	}
}

func TestDrawIsDeterministic(t *testing.T) {
	render := func() []byte {
		svg := canvas.NewSVG()
		reg := canvas.NewRegistry()
		reg.Register("chart", svg)
		w, err := New(reg, "chart", 400, 300, WithSeed(7), WithLogger(log.New(io.Discard)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := w.AddPoint(1, 90); err != nil {
			t.Fatalf("AddPoint: %v", err)
		}
		return svg.Bytes()
	}
	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Error("same seed and calls should produce identical SVG")
	}
	if !bytes.Contains(a, []byte("(R=1.0, θ=90°)")) {
		t.Error("SVG missing marker label")
	}

	// Redrawing without changes reproduces the frame.
	svg := canvas.NewSVG()
	reg := canvas.NewRegistry()
	reg.Register("chart", svg)
	w, err := New(reg, "chart", 400, 300, WithSeed(7), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	first := svg.Bytes()
	if _, err := w.Draw(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, svg.Bytes()) {
		t.Error("Draw should be idempotent")
	}
}

func TestFrameIsCopy(t *testing.T) {
	w, _ := newTestWidget(t)
	if err := w.AddPoint(0.5, 10); err != nil {
		t.Fatal(err)
	}
	f := w.Frame()
	f.Markers[0].Label = "changed"
	if w.Frame().Markers[0].Label == "changed" {
		t.Error("Frame() should return a copy")
	}
	if got := w.Frame().Labels(); len(got) != 1 || got[0] != "(R=0.5, θ=10°)" {
		t.Errorf("Labels() = %v", got)
	}
}
