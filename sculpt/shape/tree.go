package shape

import (
	"math"
	"math/rand"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// TreeParams shapes the cone of the main tree.
type TreeParams struct {
	Radius float32 // base radius of the cone
	Height float32

	CoreColor  mgl32.Vec3
	MidColor   mgl32.Vec3
	OuterColor mgl32.Vec3
}

const (
	treeLift       = 0.4 // fraction of Height the cone is raised by
	treeColorSplit = 0.4
)

// GenerateTree fills a cone volume. Radial positions are area-uniform on each
// horizontal slice, colour is keyed by the normalized radial distance and every
// particle gets a jittered, upward biased explosion direction.
func GenerateTree(count int, p TreeParams, rng *rand.Rand) (*core.Attributes, error) {
	if err := checkCount("tree", count); err != nil {
		return nil, err
	}
	if err := checkPositive("tree", "radius", p.Radius); err != nil {
		return nil, err
	}
	if err := checkPositive("tree", "height", p.Height); err != nil {
		return nil, err
	}

	attrs := core.NewAttributes(count)
	attrs.Direction = make([]mgl32.Vec3, count)

	for i := 0; i < count; i++ {
		h := rng.Float32()
		theta := rng.Float32() * 2 * math.Pi
		maxR := (1 - h) * p.Radius
		r := maxR * float32(math.Sqrt(float64(rng.Float32())))

		x := r * cos32(theta)
		y := h*p.Height - p.Height/2
		z := r * sin32(theta)

		attrs.Position[i] = mgl32.Vec3{x, y + p.Height*treeLift, z}

		distRatio := TreeDistRatio(r, maxR)
		attrs.Color[i] = TreeColor(distRatio, p.CoreColor, p.MidColor, p.OuterColor)
		attrs.Size[i] = (rng.Float32()*0.5 + 0.5) * (1 - distRatio*0.5) * 0.6
		attrs.Randomness[i] = rng.Float32()

		dir := normalizeOr(mgl32.Vec3{x, y, z}, mgl32.Vec3{0, 1, 0})
		dir[0] += (rng.Float32() - 0.5) * 1.5
		dir[1] += (rng.Float32() - 0.1) * 1.0
		dir[2] += (rng.Float32() - 0.5) * 1.5
		attrs.Direction[i] = normalizeOr(dir, mgl32.Vec3{0, 1, 0})
	}
	return attrs, nil
}

// TreeDistRatio is r/maxR clamped to [0,1]; the small epsilon keeps the apex finite.
func TreeDistRatio(r, maxR float32) float32 {
	d := r / (maxR + 0.001)
	return mgl32.Clamp(d, 0, 1)
}

// TreeColorWeights returns the convex coefficients of (core, mid, outer) used
// for the given radial ratio.
func TreeColorWeights(distRatio float32) (wCore, wMid, wOuter float32) {
	distRatio = mgl32.Clamp(distRatio, 0, 1)
	if distRatio < treeColorSplit {
		t := distRatio / treeColorSplit
		return 1 - t, t, 0
	}
	t := (distRatio - treeColorSplit) / (1 - treeColorSplit)
	return 0, 1 - t, t
}

func TreeColor(distRatio float32, coreC, midC, outerC mgl32.Vec3) mgl32.Vec3 {
	wc, wm, wo := TreeColorWeights(distRatio)
	return coreC.Mul(wc).Add(midC.Mul(wm)).Add(outerC.Mul(wo))
}
