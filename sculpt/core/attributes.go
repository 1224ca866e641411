package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Attributes holds the static per-particle buffers of one particle system.
// All buffers are parallel arrays indexed by particle; optional buffers are nil
// when the motif does not use them.
type Attributes struct {
	Count int

	Position   []mgl32.Vec3
	Color      []mgl32.Vec3
	Size       []float32
	Randomness []float32

	Direction []mgl32.Vec3 // tree: explosion direction (unit)
	Side      []float32    // wings: +1 right, -1 left
	Feather   []float32    // wings: 0 at the bone, 1 at the feather tip
	Speed     []float32    // snow: fall speed per 60Hz frame
}

// NewAttributes allocates the mandatory buffers for count particles.
func NewAttributes(count int) *Attributes {
	return &Attributes{
		Count:      count,
		Position:   make([]mgl32.Vec3, count),
		Color:      make([]mgl32.Vec3, count),
		Size:       make([]float32, count),
		Randomness: make([]float32, count),
	}
}

// Validate checks that every allocated buffer matches Count.
func (a *Attributes) Validate() error {
	if a.Count <= 0 {
		return fmt.Errorf("attributes: count must be positive, got %d", a.Count)
	}
	check := func(name string, n int, optional bool) error {
		if optional && n == 0 {
			return nil
		}
		if n != a.Count {
			return fmt.Errorf("attributes: %s buffer has %d entries, want %d", name, n, a.Count)
		}
		return nil
	}
	for _, err := range []error{
		check("position", len(a.Position), false),
		check("color", len(a.Color), false),
		check("size", len(a.Size), false),
		check("randomness", len(a.Randomness), false),
		check("direction", len(a.Direction), true),
		check("side", len(a.Side), true),
		check("feather", len(a.Feather), true),
		check("speed", len(a.Speed), true),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
