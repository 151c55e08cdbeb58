// Package canvas provides immediate-mode 2-D drawing surfaces.
//
// # Overview
//
// A [Surface] exposes the small set of primitives a chart needs: state
// save/restore, affine transforms, filled rectangles, paths made of lines and
// arcs, and aligned text. Callers draw every frame from scratch; surfaces keep
// no retained scene graph.
//
// Three implementations are provided:
//
//   - [SVG]: collects elements and produces a standalone SVG document
//   - [Raster]: draws into an RGBA image via fogleman/gg and encodes PNG
//   - [Recorder]: records every call as an [Op] for inspection
//
// # Hosts
//
// Widgets bind to surfaces by id through a [Host]. [Registry] is the simple
// map-backed host:
//
//	host := canvas.NewRegistry()
//	svg := canvas.NewSVG()
//	host.Register("stress", svg)
//
//	s, err := host.Surface("stress")
//
// # Resolution
//
// [Surface.Resize] takes physical pixels. A caller that wants a logical
// coordinate system at a higher pixel density resizes to logical×ratio and
// calls Scale(ratio, ratio) once afterwards; the scale then applies to every
// later draw until the next Resize.
package canvas
