package canvas

import (
	"fmt"
	"sync"

	"github.com/matzehuels/stressmap/pkg/errors"
)

// TextAlign is the horizontal anchor of drawn text.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// Font describes the face used by FillText.
type Font struct {
	Family string
	Size   float64 // logical pixels
	Bold   bool
}

// String renders the font in CSS shorthand, e.g. "bold 12px sans-serif".
func (f Font) String() string {
	if f.Bold {
		return fmt.Sprintf("bold %gpx %s", f.Size, f.Family)
	}
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

// DefaultFont is the font every surface starts with.
var DefaultFont = Font{Family: "sans-serif", Size: 10}

// Surface is an immediate-mode 2-D drawing target.
//
// Coordinates are in the current user space: the identity transform after
// Resize, modified by Translate, Rotate and Scale. Save and Restore push and
// pop the full drawing state (transform, colours, line width, font, text
// alignment). Colours are CSS hex strings.
type Surface interface {
	// Resize sets the physical size in pixels, clears the surface and resets
	// all drawing state.
	Resize(width, height int)
	// Size returns the physical size in pixels.
	Size() (width, height int)
	// Clear erases everything drawn so far. Drawing state is kept.
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	// Rotate rotates user space clockwise by angle radians.
	Rotate(angle float64)
	Scale(sx, sy float64)

	SetFillColor(color string)
	SetStrokeColor(color string)
	SetLineWidth(width float64)
	SetFont(f Font)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)

	FillRect(x, y, w, h float64)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise circular arc from angle start to end (radians).
	// If the path has a current point a straight line joins it to the arc.
	Arc(cx, cy, r, start, end float64)
	// Fill fills the current path. The path is kept.
	Fill()
	// Stroke strokes the current path. The path is kept.
	Stroke()

	FillText(text string, x, y float64)
}

// Host resolves drawable surfaces by id.
type Host interface {
	Surface(id string) (Surface, error)
}

// Registry is a map-backed [Host]. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register binds s to id, replacing any previous binding.
func (r *Registry) Register(id string, s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[id] = s
}

// Surface returns the surface bound to id.
func (r *Registry) Surface(id string) (Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSurfaceNotFound, "no surface registered as %q", id)
	}
	return s, nil
}

// state is the drawing state shared by the surface implementations.
type state struct {
	fill      string
	stroke    string
	lineWidth float64
	font      Font
	align     TextAlign
	baseline  TextBaseline
}

func defaultState() state {
	return state{
		fill:      "#000000",
		stroke:    "#000000",
		lineWidth: 1,
		font:      DefaultFont,
	}
}

// Ensure implementations satisfy Surface.
var (
	_ Surface = (*SVG)(nil)
	_ Surface = (*Raster)(nil)
	_ Surface = (*Recorder)(nil)
)
