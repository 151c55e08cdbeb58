package heatmap

import (
	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/stress"
)

// Fixed margins around the graph area, in logical units.
const (
	MarginTop    = 20.0
	MarginRight  = 20.0
	MarginBottom = 50.0
	MarginLeft   = 40.0
)

// Layout is the logical geometry of a widget.
type Layout struct {
	Width, Height           float64
	GraphWidth, GraphHeight float64
}

// NewLayout derives the graph area from the logical size. The graph area must
// be positive in both dimensions.
func NewLayout(width, height float64) (Layout, error) {
	l := Layout{
		Width:       width,
		Height:      height,
		GraphWidth:  width - MarginLeft - MarginRight,
		GraphHeight: height - MarginTop - MarginBottom,
	}
	if !(l.GraphWidth > 0) || !(l.GraphHeight > 0) {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"size %gx%g leaves no room for the graph (minimum %gx%g)",
			width, height, MarginLeft+MarginRight, MarginTop+MarginBottom)
	}
	return l, nil
}

// ScaleX maps R to a logical x coordinate.
func (l Layout) ScaleX(r float64) float64 {
	return (r/stress.RMax)*l.GraphWidth + MarginLeft
}

// ScaleY maps theta to a logical y coordinate. The axis is inverted.
func (l Layout) ScaleY(theta float64) float64 {
	return l.GraphHeight - (theta/stress.ThetaMax)*l.GraphHeight + MarginTop
}

// Left returns the x coordinate of the graph's left edge.
func (l Layout) Left() float64 { return MarginLeft }

// Right returns the x coordinate of the graph's right edge.
func (l Layout) Right() float64 { return MarginLeft + l.GraphWidth }

// Top returns the y coordinate of the graph's top edge.
func (l Layout) Top() float64 { return MarginTop }

// Bottom returns the y coordinate of the graph's bottom edge.
func (l Layout) Bottom() float64 { return MarginTop + l.GraphHeight }

// CellSize returns the logical size of one grid cell.
func (l Layout) CellSize(nR, nTheta int) (w, h float64) {
	return l.GraphWidth / float64(nR), l.GraphHeight / float64(nTheta)
}
