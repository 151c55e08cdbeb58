// Package stress models the geomechanical stress domain drawn by the heatmap.
//
// # Coordinates
//
// The domain is spanned by two coordinates:
//
//   - R in [0, 3]: a combined parameter encoding the fault regime (which unit
//     interval R falls in) and the position inside that regime
//   - Theta in [0, 180]: an angle in degrees
//
// # Fault Regimes
//
// [Classify] maps R onto one of three regimes by half-open interval
// membership, with the last interval closed at both ends:
//
//	Normal       [0, 1)
//	Strike-slip  [1, 2)
//	Reverse      [2, 3]
//
// Anything outside [0, 3] yields [ErrOutOfRange].
//
// [PhiPrime] recovers the regime-normalised stress ratio from R: R for normal
// faulting, 2-R for strike-slip and R-2 for reverse faulting.
//
// # Samples
//
// A grid of [Sample] values covers the domain at (nR+1)×(nTheta+1) points,
// endpoints inclusive. [RandomGrid] seeds such a grid with uniform values:
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	samples := stress.RandomGrid(50, 50, rng) // 2601 samples
package stress
