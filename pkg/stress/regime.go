package stress

import (
	"errors"
	"fmt"
)

// Domain bounds.
const (
	RMin     = 0.0
	RMax     = 3.0
	ThetaMin = 0.0
	ThetaMax = 180.0
)

// ErrOutOfRange is returned by [Classify] when R lies outside [RMin, RMax].
var ErrOutOfRange = errors.New("R out of range")

// Regime is a fault regime.
type Regime int

const (
	Normal Regime = iota
	StrikeSlip
	Reverse
)

// Regimes lists every regime in R order.
var Regimes = []Regime{Normal, StrikeSlip, Reverse}

// String returns the machine name of the regime.
func (r Regime) String() string {
	switch r {
	case Normal:
		return "normal"
	case StrikeSlip:
		return "strike-slip"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// Label returns the text drawn under the regime's band.
func (r Regime) Label() string {
	switch r {
	case Normal:
		return "Normal"
	case StrikeSlip:
		return "Strike slip"
	case Reverse:
		return "Reverse"
	default:
		return r.String()
	}
}

// Bounds returns the [lo, hi] R interval of the regime.
func (r Regime) Bounds() (lo, hi float64) {
	lo = float64(r)
	return lo, lo + 1
}

// Center returns the R value at the middle of the regime's band.
func (r Regime) Center() float64 {
	lo, hi := r.Bounds()
	return (lo + hi) / 2
}

// MarshalText encodes the regime by its machine name.
func (r Regime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Classify returns the fault regime R belongs to.
func Classify(r float64) (Regime, error) {
	switch {
	case r >= 0 && r < 1:
		return Normal, nil
	case r >= 1 && r < 2:
		return StrikeSlip, nil
	case r >= 2 && r <= 3:
		return Reverse, nil
	default:
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, r, RMin, RMax)
	}
}

// PhiPrime returns the regime-normalised stress ratio for R.
func PhiPrime(r float64, regime Regime) float64 {
	switch regime {
	case StrikeSlip:
		return 2 - r
	case Reverse:
		return r - 2
	default:
		return r
	}
}
