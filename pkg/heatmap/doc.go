// Package heatmap renders the stress-domain heatmap widget.
//
// # Overview
//
// A [Widget] owns one [canvas.Surface], a logical coordinate system (R in
// [0, 3] horizontally, theta in [0, 180] degrees vertically), a grid of
// scalar samples and a list of annotated points. Every mutator redraws the
// whole surface synchronously:
//
//	reg := canvas.NewRegistry()
//	reg.Register("chart", canvas.NewSVG())
//
//	w, err := heatmap.New(reg, "chart", 600, 400, heatmap.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	w.SetColorTable(palette.Plasma)
//	w.AddPoint(0.5, 60)
//
// # Layout
//
// The graph area is the logical size minus fixed margins (see [Layout]).
// R maps linearly to x; theta maps to y with the axis inverted so larger
// angles sit higher. The surface is resized to the logical size times the
// pixel ratio and drawn through a matching scale, so geometry never depends
// on the output resolution.
//
// # Frames
//
// [Widget.Draw] returns a [Frame] describing what was drawn: the number of
// cells, each marker with its fault regime and phi', and the points that were
// rejected because R fell outside [0, 3]. Rejected points are logged and
// skipped; the rest of the frame is still drawn.
//
// [canvas.Surface]: github.com/matzehuels/stressmap/pkg/canvas.Surface
package heatmap
