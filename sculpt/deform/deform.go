// Package deform evaluates the per-frame particle program of every motif.
//
// A Program maps one particle's static attributes plus the frame uniforms
// (elapsed time, smoothed explosion value, camera view) to a render instance.
// Programs are pure: they read the attribute buffers and never write them.
package deform

import (
	"math"
	"time"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame carries the uniforms shared by every particle of a frame.
type Frame struct {
	Time      float32 // seconds since start, wrapped by WrapTime
	Explosion float32 // smoothed explosion value, 0..1
	View      mgl32.Mat4
}

// TimePeriod is the common period of every time-driven term of the programs:
// all of their angular rates are integer multiples of 0.1 rad/s.
const TimePeriod = 20 * math.Pi

// WrapTime folds the elapsed time into [0, TimePeriod). The fold happens in
// float64, so the float32 frame time keeps its resolution in long sessions.
func WrapTime(elapsed time.Duration) float32 {
	return float32(math.Mod(elapsed.Seconds(), TimePeriod))
}

type Program interface {
	Apply(i int, attrs *core.Attributes, f Frame) core.ParticleInstance
	Falloff() Falloff
}

// Smoothstep is the cubic Hermite easing used by GLSL smoothstep.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }

// pointSize applies perspective attenuation: scale / -zView. Points at or
// behind the eye plane collapse to zero.
func pointSize(view mgl32.Mat4, pos mgl32.Vec3, scale float32) float32 {
	z := view.Mul4x1(pos.Vec4(1)).Z()
	if z >= 0 {
		return 0
	}
	return scale / -z
}

func instance(pos mgl32.Vec3, size float32, color mgl32.Vec3, alpha float32) core.ParticleInstance {
	return core.ParticleInstance{
		Pos:   [3]float32{pos.X(), pos.Y(), pos.Z()},
		Size:  size,
		Color: [4]float32{color.X(), color.Y(), color.Z(), alpha},
	}
}
