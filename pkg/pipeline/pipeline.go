// Package pipeline renders scenes to output formats with caching.
//
// The CLI and library users go through the same [Runner], so defaults,
// validation, cache keys and instrumentation are identical everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	s, _ := scene.Load("scene.toml")
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Palette: "plasma",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options override the matching scene fields when set; zero values leave the
// scene untouched.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stressmap/pkg/buildinfo"
	"github.com/matzehuels/stressmap/pkg/cache"
	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/heatmap"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/scene"
	"github.com/matzehuels/stressmap/pkg/sink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{FormatSVG}

// Options configures one render run.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Palette    string   `json:"palette,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	PixelRatio float64  `json:"pixel_ratio,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	Background string   `json:"background,omitempty"`
	Ops        bool     `json:"ops,omitempty"` // include drawing calls in JSON output

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a run.
type Result struct {
	RunID string

	// Scene is the scene after option overrides and defaults.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene's canonical encoding.
	SceneHash string

	// Frame reports what was drawn.
	Frame heatmap.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run timing and size information.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo lists which formats came from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePalette checks that name is registered in reg.
func ValidatePalette(reg *palette.Registry, name string) error {
	_, err := reg.Resolve(name)
	return err
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Background == "" {
		o.Background = sink.DefaultBackground
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call after SetDefaults.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Palette != "" {
		if err := errors.ValidatePaletteName(o.Palette); err != nil {
			return err
		}
	}
	if o.Width < 0 || o.Height < 0 || o.PixelRatio < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width, height and pixel ratio must not be negative")
	}
	return nil
}

// Apply returns a copy of s with the options' overrides, defaults applied.
func (o Options) Apply(s *scene.Scene) (*scene.Scene, error) {
	out := *s
	out.Points = slices.Clone(s.Points)
	if o.Palette != "" {
		out.Palette = o.Palette
	}
	if o.Width != 0 {
		out.Width = o.Width
	}
	if o.Height != 0 {
		out.Height = o.Height
	}
	if o.PixelRatio != 0 {
		out.PixelRatio = o.PixelRatio
	}
	if o.Seed != 0 {
		out.Seed = o.Seed
	}
	out.SetDefaults()
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &out, nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Version:    buildinfo.Version,
	}
	if format == FormatJSON && o.Ops {
		opts.Format += "+ops"
	}
	return opts
}

func (o Options) sinkOptions(reg *palette.Registry, logger *log.Logger) []sink.Option {
	opts := []sink.Option{
		sink.WithPalettes(reg),
		sink.WithBackground(o.Background),
		sink.WithLogger(logger),
	}
	if o.Ops {
		opts = append(opts, sink.WithOps())
	}
	return opts
}
