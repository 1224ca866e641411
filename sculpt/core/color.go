package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ParseHexColor converts "#rrggbb" (or "rrggbb") into linear 0..1 RGB.
func ParseHexColor(s string) (mgl32.Vec3, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("color %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255.0,
		float32((v>>8)&0xff) / 255.0,
		float32(v&0xff) / 255.0,
	}, nil
}

// LerpColor blends a towards b by t (0..1).
func LerpColor(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
