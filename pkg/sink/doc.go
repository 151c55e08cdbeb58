// Package sink turns a [scene.Scene] into output bytes.
//
// Each sink builds a [heatmap.Widget] on a surface of the matching kind and
// replays the scene through the widget's public API: construction with the
// scene's size, resolution, seed and palette, then SetData when the scene
// carries a grid, then AddPoint for every point in order. The output is
// therefore exactly what an interactive caller making the same calls would
// see.
//
//   - [RenderSVG]: a standalone SVG document
//   - [RenderPNG]: a raster image drawn with fogleman/gg
//   - [RenderPDF]: the SVG converted by rsvg-convert
//   - [RenderJSON]: the frame report, optionally with every drawing call
//
// [scene.Scene]: github.com/matzehuels/stressmap/pkg/scene.Scene
// [heatmap.Widget]: github.com/matzehuels/stressmap/pkg/heatmap.Widget
package sink
