// Package shape generates the static particle attributes of each sculpture motif.
//
// Every generator is invoked once when the sculpture is built. Draws come from the
// supplied *rand.Rand, so callers decide whether runs are reproducible.
package shape

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrGeometryConfig reports invalid generation parameters.
var ErrGeometryConfig = errors.New("invalid geometry configuration")

func checkCount(motif string, count int) error {
	if count <= 0 {
		return fmt.Errorf("%s: particle count %d: %w", motif, count, ErrGeometryConfig)
	}
	return nil
}

func checkPositive(motif, name string, v float32) error {
	if !(v > 0) || math.IsInf(float64(v), 1) {
		return fmt.Errorf("%s: %s must be positive and finite, got %v: %w", motif, name, v, ErrGeometryConfig)
	}
	return nil
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*rng.Float32()
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }
func pow32(v, e float32) float32 {
	return float32(math.Pow(float64(v), float64(e)))
}

// normalizeOr returns v/|v|, or fallback when v is (nearly) zero.
func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return fallback
	}
	return v.Mul(1 / l)
}
