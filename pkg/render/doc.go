// Package render converts SVG documents to formats stressmap cannot draw
// natively.
//
// PDF output shells out to rsvg-convert from librsvg:
//
//	svg, _ := sink.RenderSVG(s)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Use [Available] to check for the tool before offering PDF output.
package render
