package deform

import (
	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	treeSizeScale     = 300
	treeExplodeReach  = 25
	treeExplodeSpiral = 5
	treeExplodeLift   = 5
	treeDustSize      = 0.6
	treeExplodedAlpha = 0.7
	treeBreathAmp     = 0.02
	treeBobAmp        = 0.05
)

// TreeProgram breathes the cone and disperses it along the precomputed
// explosion directions as the explosion value rises.
type TreeProgram struct{}

func (TreeProgram) Falloff() Falloff { return TreeFalloff }

func (TreeProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	pos := attrs.Position[i]
	rnd := attrs.Randomness[i]

	// idle breathing, independent of the gesture
	breath := sin32(f.Time*1.5 + pos.Y()*0.5 + rnd*5)
	pos[0] += pos[0] * breath * treeBreathAmp
	pos[2] += pos[2] * breath * treeBreathAmp
	pos[1] += sin32(f.Time*0.5+rnd*10) * treeBobAmp

	explode := ExplodeFactor(f.Explosion)
	pos = pos.Add(ExplosionOffset(attrs.Direction[i], rnd, explode))

	size := attrs.Size[i] * mix(1, treeDustSize, explode)
	alpha := mix(1, treeExplodedAlpha, explode)
	return instance(pos, pointSize(f.View, pos, size*treeSizeScale), attrs.Color[i], alpha)
}

// ExplodeFactor eases the explosion value with zero velocity at both ends.
func ExplodeFactor(e float32) float32 {
	return Smoothstep(0, 1, e)
}

// ExplosionOffset is the dispersal displacement for one particle: pushed along
// dir, spun about Y by a per-particle phase and lifted.
func ExplosionOffset(dir mgl32.Vec3, randomness, explode float32) mgl32.Vec3 {
	offset := dir.Mul(explode * treeExplodeReach)

	angle := explode * randomness * treeExplodeSpiral
	s, c := sin32(angle), cos32(angle)
	offset = mgl32.Vec3{
		offset.X()*c - offset.Z()*s,
		offset.Y(),
		offset.X()*s + offset.Z()*c,
	}

	offset[1] += explode * treeExplodeLift * randomness
	return offset
}
