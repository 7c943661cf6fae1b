// Package fusion turns a series of raw signed observations into a single
// bounded align score. The pipeline is clamp → atanh → weighted accumulate
// → tanh, so the result is strictly inside (-1, 1) for any finite input.
package fusion

import (
	"fmt"
	"math"
)

// Default numeric guards. EpsA keeps clamped values away from the atanh
// singularities at ±1; EpsW floors the weight sum before division.
const (
	DefaultEpsA = 1e-6
	DefaultEpsW = 1e-12
)

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fuse computes the align score for a raw series. weights may be nil for
// uniform weighting; when non-nil its length must match the series. An
// empty series is rejected rather than defaulting to zero.
func Fuse(series []float64, weights []float64, epsA, epsW float64) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("fusion: empty series")
	}
	if weights != nil && len(weights) != len(series) {
		return 0, fmt.Errorf("fusion: weights length %d does not match series length %d", len(weights), len(series))
	}

	lo := -1.0 + epsA
	hi := 1.0 - epsA

	var u, w float64
	for i, a := range series {
		wi := 1.0
		if weights != nil {
			wi = weights[i]
		}
		u += wi * math.Atanh(Clamp(a, lo, hi))
		w += wi
	}

	return math.Tanh(u / math.Max(w, epsW)), nil
}
