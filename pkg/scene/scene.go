// Package scene describes a heatmap declaratively: logical size, resolution,
// palette, grid and annotated points.
//
// Scenes are read from TOML or JSON. A minimal TOML scene:
//
//	palette = "plasma"
//	seed = 7
//
//	[[points]]
//	r = 0.5
//	theta = 60
//
// Grid data is optional. It is given either as explicit samples or as a
// values matrix with one row per R division and one column per theta
// division. Without either, the widget's seeded random grid is used.
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/stress"
)

// Defaults applied by [Scene.SetDefaults].
const (
	DefaultWidth      = 600.0
	DefaultHeight     = 400.0
	DefaultPixelRatio = 1.0
	DefaultSeed       = 42
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Scene is everything needed to reproduce one heatmap.
type Scene struct {
	Width          float64         `json:"width" toml:"width"`
	Height         float64         `json:"height" toml:"height"`
	PixelRatio     float64         `json:"pixel_ratio" toml:"pixel_ratio"`
	Palette        string          `json:"palette" toml:"palette"`
	RDivisions     int             `json:"r_divisions" toml:"r_divisions"`
	ThetaDivisions int             `json:"theta_divisions" toml:"theta_divisions"`
	Seed           uint64          `json:"seed" toml:"seed"`
	Samples        []stress.Sample `json:"samples,omitempty" toml:"samples"`
	Values         [][]float64     `json:"values,omitempty" toml:"values"`
	Points         []stress.Point  `json:"points,omitempty" toml:"points"`
}

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene file %q (want .toml or .json)", filepath.Base(path))
	}
}

// Load reads a scene file, applies defaults and validates it.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene, applies defaults and validates it.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	s.SetDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetDefaults fills zero fields. A values matrix determines the divisions.
func (s *Scene) SetDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.PixelRatio == 0 {
		s.PixelRatio = DefaultPixelRatio
	}
	if s.Palette == "" {
		s.Palette = palette.DefaultName
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
	if len(s.Values) > 0 {
		s.RDivisions = len(s.Values) - 1
		s.ThetaDivisions = len(s.Values[0]) - 1
		return
	}
	if s.RDivisions == 0 {
		s.RDivisions = stress.DefaultDivisions
	}
	if s.ThetaDivisions == 0 {
		s.ThetaDivisions = stress.DefaultDivisions
	}
}

// Validate checks the scene after defaults are applied. The palette name is
// checked for shape only; whether it exists is decided at draw time.
func (s *Scene) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) {
		return errors.New(errors.ErrCodeInvalidScene, "size must be positive (got %gx%g)", s.Width, s.Height)
	}
	if !(s.PixelRatio > 0) {
		return errors.New(errors.ErrCodeInvalidScene, "pixel_ratio must be positive (got %g)", s.PixelRatio)
	}
	if err := errors.ValidatePaletteName(s.Palette); err != nil {
		return err
	}
	if len(s.Samples) > 0 && len(s.Values) > 0 {
		return errors.New(errors.ErrCodeInvalidScene, "samples and values are mutually exclusive")
	}
	for i, row := range s.Values {
		if len(row) != s.ThetaDivisions+1 {
			return errors.New(errors.ErrCodeInvalidScene, "values row %d has %d entries, want %d", i, len(row), s.ThetaDivisions+1)
		}
	}
	return errors.ValidateDivisions(s.RDivisions, s.ThetaDivisions)
}

// HasData reports whether the scene carries its own grid.
func (s *Scene) HasData() bool {
	return len(s.Samples) > 0 || len(s.Values) > 0
}

// Data returns the scene's grid as samples ordered by R, then theta. It
// returns nil when the scene has no grid of its own.
func (s *Scene) Data() []stress.Sample {
	switch {
	case len(s.Samples) > 0:
		return s.Samples
	case len(s.Values) > 0:
		i := 0
		return stress.Grid(s.RDivisions, s.ThetaDivisions, func(float64, float64) float64 {
			v := s.Values[i/(s.ThetaDivisions+1)][i%(s.ThetaDivisions+1)]
			i++
			return v
		})
	default:
		return nil
	}
}

// Canonical returns the JSON encoding used to key cached artifacts.
func (s *Scene) Canonical() ([]byte, error) {
	return json.Marshal(s)
}
