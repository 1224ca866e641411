package deform

import (
	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// RingsProgram turns the ground rings slowly about the vertical axis.
type RingsProgram struct{}

const (
	ringsSpin      = 0.1
	ringsSizeScale = 200
)

func (RingsProgram) Falloff() Falloff { return RingsFalloff }

func (RingsProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	pos := mgl32.Rotate3DY(f.Time * ringsSpin).Mul3x1(attrs.Position[i])
	return instance(pos, pointSize(f.View, pos, attrs.Size[i]*ringsSizeScale), attrs.Color[i], 1)
}

// SnowProgram only projects flakes; their fall is integrated on the host.
type SnowProgram struct{}

const snowSizeScale = 60

func (SnowProgram) Falloff() Falloff { return SnowFalloff }

func (SnowProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	pos := attrs.Position[i]
	return instance(pos, pointSize(f.View, pos, snowSizeScale), attrs.Color[i], 1)
}

// StarProgram tumbles the star cluster around its own centre.
type StarProgram struct {
	Center mgl32.Vec3
}

const starSizeScale = 10 * 50

func (StarProgram) Falloff() Falloff { return StarFalloff }

func (p StarProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	rot := mgl32.Rotate3DY(-f.Time * 0.5).Mul3(mgl32.Rotate3DZ(f.Time * 0.2))
	pos := p.Center.Add(rot.Mul3x1(attrs.Position[i]))
	return instance(pos, pointSize(f.View, pos, attrs.Size[i]*starSizeScale), attrs.Color[i], 1)
}

// StarCoreProgram draws the core ball at the star centre. The ball is
// symmetric, so it does not tumble with the cluster.
type StarCoreProgram struct {
	Center mgl32.Vec3
}

const starCoreSizeScale = 200

func (StarCoreProgram) Falloff() Falloff { return StarCoreFalloff }

func (p StarCoreProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	pos := p.Center.Add(attrs.Position[i])
	return instance(pos, pointSize(f.View, pos, attrs.Size[i]*starCoreSizeScale), attrs.Color[i], 1)
}

// WingsProgram flaps each wing about a pivot near the spine. The tip lags the
// root through a wave term, and feather tips flutter.
type WingsProgram struct {
	PivotY float32
}

const (
	wingFlapSpeed = 0.8
	wingFlapAmp   = 0.25
	wingWave      = 0.2
	wingFlutter   = 0.05
	wingSizeScale = 150
)

func (WingsProgram) Falloff() Falloff { return WingsFalloff }

// FlapAngle is the rotation about Z for a particle at span position x.
func FlapAngle(t, x, side float32) float32 {
	base := sin32(t*wingFlapSpeed) * wingFlapAmp
	local := sin32(t*wingFlapSpeed-x*wingWave) * wingFlapAmp
	return (base*0.3 + local*0.7) * side
}

func (p WingsProgram) Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance {
	pos := attrs.Position[i]
	feather := attrs.Feather[i]

	angle := FlapAngle(f.Time, pos.X(), attrs.Side[i])
	s, c := sin32(angle), cos32(angle)
	ox, oy := pos.X(), pos.Y()-p.PivotY
	pos[0] = ox*c - oy*s
	pos[1] = ox*s + oy*c + p.PivotY

	pos[2] += sin32(f.Time*5+pos.X()+pos.Y()) * wingFlutter * feather

	alpha := 0.6 + 0.4*(1-feather)
	return instance(pos, pointSize(f.View, pos, attrs.Size[i]*wingSizeScale), attrs.Color[i], alpha)
}
