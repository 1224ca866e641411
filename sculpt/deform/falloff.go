package deform

import "math"

type FalloffKind uint32

const (
	// FalloffPower: pow(1 - 2d, Exponent)
	FalloffPower FalloffKind = iota
	// FalloffBand: 1 - smoothstep(0.3, 0.5, d)
	FalloffBand
)

// Falloff is the fragment stage of a motif: a circular mask over the point
// sprite with a soft glow towards the rim.
type Falloff struct {
	Kind     FalloffKind
	Exponent float32
	Opacity  float32
}

// SpriteRadius is the distance from the sprite centre beyond which fragments
// are discarded (point coordinates run 0..1).
const SpriteRadius = 0.5

var (
	TreeFalloff  = Falloff{Kind: FalloffPower, Exponent: 2, Opacity: 1}
	RingsFalloff = Falloff{Kind: FalloffPower, Exponent: 1.5, Opacity: 0.4}
	SnowFalloff  = Falloff{Kind: FalloffBand, Opacity: 0.8}
	StarFalloff  = Falloff{Kind: FalloffPower, Exponent: 3, Opacity: 1}
	WingsFalloff = Falloff{Kind: FalloffPower, Exponent: 1.5, Opacity: 1}
	// solid disc with a short soft rim
	StarCoreFalloff = Falloff{Kind: FalloffBand, Opacity: 1}
)

// Alpha returns the fragment alpha multiplier at distance d from the sprite
// centre. ok is false when the fragment is discarded.
func (f Falloff) Alpha(d float32) (alpha float32, ok bool) {
	if d > SpriteRadius {
		return 0, false
	}
	switch f.Kind {
	case FalloffBand:
		return (1 - Smoothstep(0.3, 0.5, d)) * f.Opacity, true
	default:
		glow := 1 - 2*d
		if glow < 0 {
			glow = 0
		}
		return float32(math.Pow(float64(glow), float64(f.Exponent))) * f.Opacity, true
	}
}
