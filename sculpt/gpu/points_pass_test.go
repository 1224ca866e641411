package gpu

import (
	"testing"
	"unsafe"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/gekko3d/blossom/sculpt/deform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// Layouts must match points.wgsl.
func TestLayouts(t *testing.T) {
	assert.Equal(t, uintptr(96), unsafe.Sizeof(PointsUniforms{}))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(PointsUniforms{}.Viewport))
	assert.Equal(t, uintptr(72), unsafe.Offsetof(PointsUniforms{}.FalloffKind))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(PointsUniforms{}.Opacity))

	assert.Equal(t, uintptr(32), unsafe.Sizeof(core.ParticleInstance{}))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(core.ParticleInstance{}.Size))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(core.ParticleInstance{}.Color))
}

func TestNewPointsUniforms(t *testing.T) {
	u := NewPointsUniforms(mgl32.Ident4(), 1280, 720, deform.SnowFalloff)
	assert.Equal(t, [2]float32{1280, 720}, u.Viewport)
	assert.Equal(t, uint32(deform.FalloffBand), u.FalloffKind)
	assert.Equal(t, float32(0.8), u.Opacity)

	u = NewPointsUniforms(mgl32.Ident4(), 0, -3, deform.TreeFalloff)
	assert.Equal(t, [2]float32{1, 1}, u.Viewport, "minimised windows keep a valid viewport")
	assert.Equal(t, float32(2), u.Exponent)
}
