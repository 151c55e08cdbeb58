// Package palette provides named colour schemes and the interpolation used to
// turn a scalar in [0, 1] into a colour.
//
// Schemes live in an immutable [Registry]. [Default] returns the shared
// registry holding viridis, plasma, inferno (10 stops each) and bw (2 stops).
// Callers that need other schemes build their own with [NewRegistry] and hand
// it to the widget.
//
//	s, ok := palette.Default().Lookup("viridis")
//	hex := s.At(0.42) // "#2a788e"-ish, interpolated between two stops
package palette

import (
	"fmt"
	"math"
	"slices"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stressmap/pkg/errors"
)

// Built-in scheme names.
const (
	Viridis = "viridis"
	Plasma  = "plasma"
	Inferno = "inferno"
	BW      = "bw"
)

// DefaultName is the scheme a new widget starts with.
const DefaultName = Viridis

var builtin = map[string][]string{
	Viridis: {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	Plasma:  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	Inferno: {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	BW:      {"#000000", "#ffffff"},
}

// Scheme is a named, ordered sequence of colour stops.
type Scheme struct {
	name  string
	hex   []string
	stops []colorful.Color
}

// NewScheme parses hex stops into a scheme. At least two stops are required.
func NewScheme(name string, stops ...string) (Scheme, error) {
	if err := errors.ValidatePaletteName(name); err != nil {
		return Scheme{}, err
	}
	if len(stops) < 2 {
		return Scheme{}, errors.New(errors.ErrCodeInvalidPalette, "palette %q needs at least 2 stops, got %d", name, len(stops))
	}
	s := Scheme{
		name:  name,
		hex:   make([]string, len(stops)),
		stops: make([]colorful.Color, len(stops)),
	}
	for i, h := range stops {
		c, err := colorful.Hex(h)
		if err != nil {
			return Scheme{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette %q stop %d", name, i)
		}
		s.stops[i] = c
		s.hex[i] = c.Hex()
	}
	return s, nil
}

// Name returns the scheme name.
func (s Scheme) Name() string { return s.name }

// Len returns the number of stops.
func (s Scheme) Len() int { return len(s.stops) }

// Stops returns a copy of the normalised "#rrggbb" stops.
func (s Scheme) Stops() []string { return slices.Clone(s.hex) }

// At maps value onto the scheme by linear interpolation between adjacent
// stops, rounding each channel to the nearest integer. Values at or above 1
// return the last stop; values below 0 return the first.
func (s Scheme) At(value float64) string {
	n := len(s.stops)
	scaled := value * float64(n-1)
	index := math.Floor(scaled)
	factor := scaled - index

	if index >= float64(n-1) {
		return s.hex[n-1]
	}
	if index < 0 || math.IsNaN(index) {
		return s.hex[0]
	}
	i := int(index)
	r0, g0, b0 := s.stops[i].RGB255()
	r1, g1, b1 := s.stops[i+1].RGB255()
	return fmt.Sprintf("#%02x%02x%02x", lerp(r0, r1, factor), lerp(g0, g1, factor), lerp(b0, b1, factor))
}

// lerp interpolates one 8-bit channel and rounds half away from zero.
func lerp(a, b uint8, factor float64) uint8 {
	return uint8(math.Round(float64(a) + factor*(float64(b)-float64(a))))
}

// Registry is an immutable set of schemes keyed by name.
type Registry struct {
	schemes map[string]Scheme
	names   []string
}

// NewRegistry builds a registry from schemes. Duplicate names are rejected.
func NewRegistry(schemes ...Scheme) (*Registry, error) {
	r := &Registry{schemes: make(map[string]Scheme, len(schemes))}
	for _, s := range schemes {
		if s.name == "" {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "palette without a name")
		}
		if _, dup := r.schemes[s.name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "duplicate palette %q", s.name)
		}
		r.schemes[s.name] = s
		r.names = append(r.names, s.name)
	}
	slices.Sort(r.names)
	return r, nil
}

// Lookup returns the scheme registered under name.
func (r *Registry) Lookup(name string) (Scheme, bool) {
	s, ok := r.schemes[name]
	return s, ok
}

// Resolve is like Lookup but returns an INVALID_PALETTE error for unknown names.
func (r *Registry) Resolve(name string) (Scheme, error) {
	s, ok := r.schemes[name]
	if !ok {
		return Scheme{}, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q (available: %v)", name, r.names)
	}
	return s, nil
}

// Names returns the sorted scheme names.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry of built-in schemes.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		schemes := make([]Scheme, 0, len(builtin))
		for name, stops := range builtin {
			s, err := NewScheme(name, stops...)
			if err != nil {
				panic(fmt.Sprintf("palette: built-in %s: %v", name, err))
			}
			schemes = append(schemes, s)
		}
		r, err := NewRegistry(schemes...)
		if err != nil {
			panic(fmt.Sprintf("palette: built-in registry: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
