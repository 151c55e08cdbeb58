// Package pkg holds the libraries behind stressmap, a renderer for fault
// regime stress heatmaps.
//
// # Overview
//
// A heatmap plots the stress ratio R in [0, 3] on the x axis against an
// orientation θ in [0°, 180°] on the y axis. Each unit interval of R is a
// fault regime: normal, strike-slip and reverse. Points placed on the map are
// labelled with their coordinates and classified into a regime.
//
// The libraries are layered:
//
//  1. [stress] - regimes, samples and grid generation
//  2. [palette] - named colour schemes and interpolation
//  3. [canvas] - drawing surfaces (SVG, raster, recorder) behind one interface
//  4. [heatmap] - the widget that lays out and draws a heatmap on a surface
//  5. [scene] - declarative TOML/JSON descriptions of a heatmap
//  6. [sink] - scene to SVG, PNG, PDF or JSON frame report
//  7. [pipeline] - cached, instrumented multi-format rendering
//
// Supporting packages: [cache] (file and redis artifact caches), [errors]
// (coded errors), [observability] (hooks), [render] (PDF conversion),
// [fonts] and [buildinfo].
//
// # Data Flow
//
//	scene.toml / flags
//	       ↓
//	  [scene] package (defaults + validation)
//	       ↓
//	  [pipeline] package (cache lookup per format)
//	       ↓
//	  [sink] package → [heatmap] widget → [canvas] surface
//	       ↓
//	  SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	reg := canvas.NewRegistry()
//	reg.Register("chart", canvas.NewSVG())
//	w, err := heatmap.New(reg, "chart", 600, 400, heatmap.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w.AddPoint(0.5, 60)
//	w.AddPoint(2.5, 30)
//
// [stress]: github.com/matzehuels/stressmap/pkg/stress
// [palette]: github.com/matzehuels/stressmap/pkg/palette
// [canvas]: github.com/matzehuels/stressmap/pkg/canvas
// [heatmap]: github.com/matzehuels/stressmap/pkg/heatmap
// [scene]: github.com/matzehuels/stressmap/pkg/scene
// [sink]: github.com/matzehuels/stressmap/pkg/sink
// [pipeline]: github.com/matzehuels/stressmap/pkg/pipeline
// [cache]: github.com/matzehuels/stressmap/pkg/cache
// [errors]: github.com/matzehuels/stressmap/pkg/errors
// [observability]: github.com/matzehuels/stressmap/pkg/observability
// [render]: github.com/matzehuels/stressmap/pkg/render
// [fonts]: github.com/matzehuels/stressmap/pkg/fonts
// [buildinfo]: github.com/matzehuels/stressmap/pkg/buildinfo
package pkg
