package shape

import (
	"math"
	"math/rand"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// RingParams places the two ground rings relative to the tree radius.
type RingParams struct {
	TreeRadius float32
	Color      mgl32.Vec3
}

// RingBand is one radial population of the rings motif.
type RingBand struct {
	Weight             float32 // share of particles
	MinScale, MaxScale float32 // radius range as a multiple of TreeRadius
	YSpread            float32
}

var (
	InnerRing = RingBand{Weight: 0.6, MinScale: 1.2, MaxScale: 2.0, YSpread: 0.5}
	OuterRing = RingBand{Weight: 0.4, MinScale: 2.5, MaxScale: 4.0, YSpread: 0.8}
)

const ringBaseY = -1.0

// sampleScale draws a radius multiple that is area-uniform over the annulus,
// so particles do not bunch up on the inner edge of a band.
func (b RingBand) sampleScale(rng *rand.Rand) float32 {
	lo2 := b.MinScale * b.MinScale
	hi2 := b.MaxScale * b.MaxScale
	return float32(math.Sqrt(float64(uniform(rng, lo2, hi2))))
}

// GenerateRings scatters particles over two concentric annuli near the ground.
// Size holds the per-particle scale factor consumed by the rings program.
func GenerateRings(count int, p RingParams, rng *rand.Rand) (*core.Attributes, error) {
	if err := checkCount("rings", count); err != nil {
		return nil, err
	}
	if err := checkPositive("rings", "tree radius", p.TreeRadius); err != nil {
		return nil, err
	}

	attrs := core.NewAttributes(count)
	for i := 0; i < count; i++ {
		theta := rng.Float32() * 2 * math.Pi

		band := OuterRing
		if rng.Float32() > 1-InnerRing.Weight {
			band = InnerRing
		}
		r := p.TreeRadius * band.sampleScale(rng)
		y := (rng.Float32()-0.5)*band.YSpread + ringBaseY

		attrs.Position[i] = mgl32.Vec3{r * cos32(theta), y, r * sin32(theta)}
		attrs.Color[i] = p.Color
		attrs.Size[i] = rng.Float32()
		attrs.Randomness[i] = rng.Float32()
	}
	return attrs, nil
}
