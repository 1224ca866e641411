package shape

import (
	"math"
	"math/rand"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type WingParams struct {
	Span         float32 // horizontal reach of one wing
	HeightOffset float32 // world height of the wing root
	Color        mgl32.Vec3
}

// WingBoneY is the arching top edge of the wing at span position t.
func WingBoneY(t float32) float32 {
	return sin32(t*math.Pi)*2.5 + (1-t)*1.0
}

// WingFeatherLength is the hanging feather length at span position t:
// short at the body, longest mid-wing, medium at the tip.
func WingFeatherLength(t float32) float32 {
	return 4.5 * sin32(pow32(t, 0.7)*math.Pi)
}

// GenerateWings builds a pair of mirrored wings. t runs along the span, r down
// the feather; both are power-biased for density near the body and the bone.
func GenerateWings(count int, p WingParams, rng *rand.Rand) (*core.Attributes, error) {
	if err := checkCount("wings", count); err != nil {
		return nil, err
	}
	if err := checkPositive("wings", "span", p.Span); err != nil {
		return nil, err
	}

	attrs := core.NewAttributes(count)
	attrs.Side = make([]float32, count)
	attrs.Feather = make([]float32, count)

	for i := 0; i < count; i++ {
		side := float32(-1)
		if rng.Float32() > 0.5 {
			side = 1
		}

		t := pow32(rng.Float32(), 0.8)
		r := pow32(rng.Float32(), 1.2)

		x := t * p.Span
		y := WingBoneY(t) - r*WingFeatherLength(t)

		// swept back, thick at the bone and thin at the tip, coverts bulge out
		z := -1.5 - t*2.5
		thickness := 0.8 * (1 - t) * (1 - r*0.5)
		z += (rng.Float32() - 0.5) * thickness
		z += sin32(r*math.Pi) * 0.3

		attrs.Position[i] = mgl32.Vec3{x * side, y + p.HeightOffset, z}
		attrs.Color[i] = p.Color
		attrs.Size[i] = (1 - r*0.6) * (rng.Float32()*0.6 + 0.4)
		attrs.Randomness[i] = rng.Float32()
		attrs.Side[i] = side
		attrs.Feather[i] = r
	}
	return attrs, nil
}
