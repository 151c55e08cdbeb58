package heatmap

import (
	"slices"

	"github.com/matzehuels/stressmap/pkg/stress"
)

// Frame reports what one call to [Widget.Draw] put on the surface.
type Frame struct {
	Width          float64     `json:"width"`
	Height         float64     `json:"height"`
	PixelRatio     float64     `json:"pixel_ratio"`
	Palette        string      `json:"palette"`
	RDivisions     int         `json:"r_divisions"`
	ThetaDivisions int         `json:"theta_divisions"`
	Cells          int         `json:"cells"`
	Markers        []Marker    `json:"markers"`
	Rejected       []Rejection `json:"rejected,omitempty"`
}

// Marker is an annotated point that was drawn.
type Marker struct {
	Point    stress.Point  `json:"point"`
	Regime   stress.Regime `json:"regime"`
	PhiPrime float64       `json:"phi_prime"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Label    string        `json:"label"`
}

// Rejection is an annotated point that was skipped.
type Rejection struct {
	Index  int          `json:"index"`
	Point  stress.Point `json:"point"`
	Reason string       `json:"reason"`
}

// Labels returns the marker labels in draw order.
func (f Frame) Labels() []string {
	labels := make([]string, len(f.Markers))
	for i, m := range f.Markers {
		labels[i] = m.Label
	}
	return labels
}

func (f Frame) clone() Frame {
	f.Markers = slices.Clone(f.Markers)
	f.Rejected = slices.Clone(f.Rejected)
	return f
}
