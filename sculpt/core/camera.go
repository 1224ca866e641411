package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCameraState is the scene camera. It circles Target at a fixed radius and
// height; AutoRotateSpeed uses OrbitControls units (2 = one turn per 60s).
type OrbitCameraState struct {
	Position        mgl32.Vec3
	Target          mgl32.Vec3
	FovDegrees      float32
	Near, Far       float32
	AutoRotateSpeed float32
}

func NewOrbitCameraState(position, target mgl32.Vec3) *OrbitCameraState {
	return &OrbitCameraState{
		Position:        position,
		Target:          target,
		FovDegrees:      45,
		Near:            0.1,
		Far:             1000,
		AutoRotateSpeed: 0.5,
	}
}

// Advance rotates the camera around the vertical axis through Target.
func (c *OrbitCameraState) Advance(dt float32) {
	if c.AutoRotateSpeed == 0 || dt <= 0 {
		return
	}
	angle := 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
	rel := c.Position.Sub(c.Target)
	rot := mgl32.Rotate3DY(float32(angle))
	c.Position = c.Target.Add(rot.Mul3x1(rel))
}

func (c *OrbitCameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovDegrees), aspect, c.Near, c.Far)
}
