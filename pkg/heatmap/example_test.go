package heatmap_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/heatmap"
	"github.com/matzehuels/stressmap/pkg/palette"
)

func Example() {
	reg := canvas.NewRegistry()
	reg.Register("chart", canvas.NewSVG())

	w, err := heatmap.New(reg, "chart", 600, 400,
		heatmap.WithSeed(42),
		heatmap.WithLogger(log.New(io.Discard)))
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = w.SetColorTable(palette.Plasma)
	_ = w.AddPoint(0.5, 60)
	_ = w.AddPoint(1.5, 120)
	_ = w.AddPoint(2.5, 30)
	_ = w.AddPoint(3.5, 90) // outside [0, 3], skipped

	for _, m := range w.Frame().Markers {
		fmt.Printf("%-11s %s phi'=%.1f\n", m.Regime, m.Label, m.PhiPrime)
	}
	fmt.Println("rejected:", len(w.Frame().Rejected))
	// Output:
	// normal      (R=0.5, θ=60°) phi'=0.5
	// strike-slip (R=1.5, θ=120°) phi'=0.5
	// reverse     (R=2.5, θ=30°) phi'=0.5
	// rejected: 1
}

func ExampleLayout_ScaleY() {
	l, _ := heatmap.NewLayout(600, 400)
	fmt.Println(l.ScaleY(0), l.ScaleY(90), l.ScaleY(180))
	// Output: 350 185 20
}
