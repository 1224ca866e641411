package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_Validate(t *testing.T) {
	a := NewAttributes(4)
	require.NoError(t, a.Validate())

	a.Direction = make([]mgl32.Vec3, 4)
	require.NoError(t, a.Validate())

	a.Side = make([]float32, 3)
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "side")

	a.Side = nil
	a.Size = a.Size[:2]
	assert.Error(t, a.Validate())

	assert.Error(t, (&Attributes{}).Validate())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1, c.X(), 1e-6)
	assert.InDelta(t, 128.0/255.0, c.Y(), 1e-6)
	assert.InDelta(t, 0, c.Z(), 1e-6)

	c, err = ParseHexColor(" 000000 ")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#12345678"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestLerpColor(t *testing.T) {
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0.5, 0.25}
	assert.Equal(t, a, LerpColor(a, b, 0))
	assert.Equal(t, b, LerpColor(a, b, 1))
	assert.True(t, LerpColor(a, b, 0.5).ApproxEqual(mgl32.Vec3{0.5, 0.25, 0.125}))
}

func TestOrbitCamera_Advance(t *testing.T) {
	cam := NewOrbitCameraState(mgl32.Vec3{0, 8, 24}, mgl32.Vec3{0, 6, 0})
	// speed 0.5 means one full turn every 120 seconds
	for i := 0; i < 60*60; i++ {
		cam.Advance(1.0 / 60)
		assert.InDelta(t, 8, cam.Position.Y(), 1e-4)
	}
	assert.InDelta(t, 0, cam.Position.X(), 0.05)
	assert.InDelta(t, -24, cam.Position.Z(), 0.05)

	frozen := NewOrbitCameraState(mgl32.Vec3{0, 8, 24}, mgl32.Vec3{})
	frozen.AutoRotateSpeed = 0
	frozen.Advance(10)
	assert.Equal(t, mgl32.Vec3{0, 8, 24}, frozen.Position)
}

func TestOrbitCamera_Matrices(t *testing.T) {
	cam := NewOrbitCameraState(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	view := cam.GetViewMatrix()
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -10, p.Z(), 1e-5)

	proj := cam.GetProjectionMatrix(0)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 1000), proj)
}

func TestMotifs_DrawOrder(t *testing.T) {
	assert.Equal(t, []Motif{MotifRings, MotifWings, MotifTree, MotifStar, MotifStarCore, MotifSnow}, Motifs())
	assert.Equal(t, "tree", MotifTree.String())
	assert.Equal(t, "star-core", MotifStarCore.String())
}
