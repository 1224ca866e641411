// Package explosion holds the animation driver of the tree dispersal.
//
// Target is written by the detection loop and read by the render loop. It is a
// single-slot cell: the latest write wins and readers never block. Tracker is
// owned by the render loop and eases its value towards the target.
package explosion

import (
	"math"
	"sync/atomic"
)

// DefaultRate is the smoothing speed in 1/s.
const DefaultRate = 2.0

// Target is the externally supplied explosion value, always within [0,1].
type Target struct {
	bits atomic.Uint32
}

// Set stores v clamped to [0,1]. NaN is treated as 0.
func (t *Target) Set(v float32) {
	t.bits.Store(math.Float32bits(Clamp01(v)))
}

func (t *Target) Load() float32 {
	return math.Float32frombits(t.bits.Load())
}

func Clamp01(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tracker smooths the explosion value. The zero value starts at 0 with the
// default rate.
type Tracker struct {
	Rate    float32
	current float32
}

func NewTracker(rate float32) *Tracker {
	return &Tracker{Rate: rate}
}

func (tr *Tracker) Current() float32 { return tr.current }

// Step moves the current value towards target by min(1, dt*rate) of the
// remaining distance and returns it. The step never overshoots target.
func (tr *Tracker) Step(target, dt float32) float32 {
	if dt <= 0 {
		return tr.current
	}
	rate := tr.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	alpha := dt * rate
	if alpha > 1 {
		alpha = 1
	}
	tr.current += (Clamp01(target) - tr.current) * alpha
	return tr.current
}
