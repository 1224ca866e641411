package shape

import (
	"math"
	"math/rand"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type StarParams struct {
	Radius float32 // cluster radius
	Color  mgl32.Vec3
}

// GenerateStar samples a ball uniformly by volume (r = U^(1/3)).
// Positions are local to the star group; the star program places the group.
func GenerateStar(count int, p StarParams, rng *rand.Rand) (*core.Attributes, error) {
	if err := checkCount("star", count); err != nil {
		return nil, err
	}
	if err := checkPositive("star", "radius", p.Radius); err != nil {
		return nil, err
	}

	attrs := core.NewAttributes(count)
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := math.Cbrt(rng.Float64()) * float64(p.Radius)

		attrs.Position[i] = mgl32.Vec3{
			float32(r * math.Sin(phi) * math.Cos(theta)),
			float32(r * math.Sin(phi) * math.Sin(theta)),
			float32(r * math.Cos(phi)),
		}
		attrs.Color[i] = p.Color
		attrs.Size[i] = 1
		attrs.Randomness[i] = rng.Float32()
	}
	return attrs, nil
}

// The solid centre of the star: a small dense ball drawn over the cluster.
const (
	StarCoreRadius = 0.2
	StarCoreCount  = 24
)

// GenerateStarCore fills the star's core ball with StarCoreCount particles in
// the star colour.
func GenerateStarCore(p StarParams, rng *rand.Rand) (*core.Attributes, error) {
	return GenerateStar(StarCoreCount, StarParams{Radius: StarCoreRadius, Color: p.Color}, rng)
}
