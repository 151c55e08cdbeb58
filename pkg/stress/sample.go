package stress

import (
	"fmt"
	"math/rand/v2"
)

// DefaultDivisions is the default number of grid divisions per axis.
const DefaultDivisions = 50

// Sample is a scalar value at one grid position.
type Sample struct {
	R     float64 `json:"r" toml:"r"`
	Theta float64 `json:"theta" toml:"theta"`
	Value float64 `json:"value" toml:"value"`
}

// Point is an annotated position in the stress domain.
type Point struct {
	R     float64 `json:"r" toml:"r"`
	Theta float64 `json:"theta" toml:"theta"`
}

// Label returns the marker text for the point, e.g. "(R=0.5, θ=60°)".
func (p Point) Label() string {
	return fmt.Sprintf("(R=%.1f, θ=%.0f°)", p.R, p.Theta)
}

// GridSize returns the number of samples a grid with nR×nTheta divisions holds.
func GridSize(nR, nTheta int) int {
	return (nR + 1) * (nTheta + 1)
}

// RandomGrid returns (nR+1)×(nTheta+1) samples evenly spaced over the domain
// with values drawn uniformly from [0, 1). Samples are ordered by R, then theta.
func RandomGrid(nR, nTheta int, rng *rand.Rand) []Sample {
	return Grid(nR, nTheta, func(float64, float64) float64 { return rng.Float64() })
}

// Grid returns (nR+1)×(nTheta+1) samples evenly spaced over the domain with
// values computed by fn.
func Grid(nR, nTheta int, fn func(r, theta float64) float64) []Sample {
	if nR <= 0 || nTheta <= 0 {
		return nil
	}
	samples := make([]Sample, 0, GridSize(nR, nTheta))
	for i := 0; i <= nR; i++ {
		r := float64(i) * RMax / float64(nR)
		for j := 0; j <= nTheta; j++ {
			theta := float64(j) * ThetaMax / float64(nTheta)
			samples = append(samples, Sample{R: r, Theta: theta, Value: fn(r, theta)})
		}
	}
	return samples
}
