package shape

import (
	"math/rand"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type SnowParams struct {
	BoxSize float32 // edge length of the cube the flakes live in
	Color   mgl32.Vec3
}

const (
	SnowMinSpeed = 0.02
	SnowMaxSpeed = 0.07
)

func GenerateSnow(count int, p SnowParams, rng *rand.Rand) (*core.Attributes, error) {
	if err := checkCount("snow", count); err != nil {
		return nil, err
	}
	if err := checkPositive("snow", "box size", p.BoxSize); err != nil {
		return nil, err
	}

	attrs := core.NewAttributes(count)
	attrs.Speed = make([]float32, count)
	for i := 0; i < count; i++ {
		attrs.Position[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * p.BoxSize,
			(rng.Float32() - 0.5) * p.BoxSize,
			(rng.Float32() - 0.5) * p.BoxSize,
		}
		attrs.Color[i] = p.Color
		attrs.Size[i] = 1
		attrs.Randomness[i] = rng.Float32()
		attrs.Speed[i] = uniform(rng, SnowMinSpeed, SnowMaxSpeed)
	}
	return attrs, nil
}

// Snowfall moves flakes down and wraps them back to the top of the box.
// It is the only per-frame mutation of static attributes.
type Snowfall struct {
	HalfExtent float32
}

func NewSnowfall(boxSize float32) Snowfall {
	return Snowfall{HalfExtent: boxSize / 2}
}

// Step advances every flake by ticks 60Hz frames.
func (s Snowfall) Step(attrs *core.Attributes, ticks float32) {
	for i := range attrs.Position {
		y := attrs.Position[i].Y() - attrs.Speed[i]*ticks
		if y < -s.HalfExtent {
			y = s.HalfExtent
		}
		attrs.Position[i][1] = y
	}
}
