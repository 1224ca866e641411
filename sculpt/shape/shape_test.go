package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCore  = mgl32.Vec3{1, 0.9, 0.95}
	testMid   = mgl32.Vec3{1, 0.5, 0.75}
	testOuter = mgl32.Vec3{0.8, 0.1, 0.4}

	testTree = TreeParams{Radius: 4.5, Height: 12, CoreColor: testCore, MidColor: testMid, OuterColor: testOuter}
)

func newRng() *rand.Rand { return rand.New(rand.NewSource(7)) }

func TestGenerators_RejectBadCounts(t *testing.T) {
	rng := newRng()
	for _, count := range []int{0, -5} {
		_, err := GenerateTree(count, testTree, rng)
		assert.ErrorIs(t, err, ErrGeometryConfig)
		_, err = GenerateRings(count, RingParams{TreeRadius: 4.5}, rng)
		assert.ErrorIs(t, err, ErrGeometryConfig)
		_, err = GenerateSnow(count, SnowParams{BoxSize: 30}, rng)
		assert.ErrorIs(t, err, ErrGeometryConfig)
		_, err = GenerateStar(count, StarParams{Radius: 0.8}, rng)
		assert.ErrorIs(t, err, ErrGeometryConfig)
		_, err = GenerateWings(count, WingParams{Span: 8}, rng)
		assert.ErrorIs(t, err, ErrGeometryConfig)
	}

	_, err := GenerateTree(10, TreeParams{Radius: 0, Height: 12}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateSnow(10, SnowParams{BoxSize: -1}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)

	nan, inf := float32(math.NaN()), float32(math.Inf(1))
	_, err = GenerateTree(10, TreeParams{Radius: nan, Height: 12}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateTree(10, TreeParams{Radius: 4.5, Height: inf}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateRings(10, RingParams{TreeRadius: inf}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateSnow(10, SnowParams{BoxSize: nan}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateStar(10, StarParams{Radius: inf}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
	_, err = GenerateWings(10, WingParams{Span: nan}, rng)
	assert.ErrorIs(t, err, ErrGeometryConfig)
}

func TestTreeColorWeights_Convex(t *testing.T) {
	for i := 0; i <= 100; i++ {
		d := float32(i) / 100
		wc, wm, wo := TreeColorWeights(d)
		assert.InDelta(t, 1, wc+wm+wo, 1e-6, "distRatio %v", d)
		assert.GreaterOrEqual(t, wc, float32(0))
		assert.GreaterOrEqual(t, wm, float32(0))
		assert.GreaterOrEqual(t, wo, float32(0))
	}

	wc, wm, wo := TreeColorWeights(0)
	assert.Equal(t, [3]float32{1, 0, 0}, [3]float32{wc, wm, wo})
	wc, wm, _ = TreeColorWeights(0.4)
	assert.InDelta(t, 0, wc, 1e-6)
	assert.InDelta(t, 1, wm, 1e-6)
	wc, wm, wo = TreeColorWeights(1)
	assert.InDelta(t, 0, wc, 1e-6)
	assert.InDelta(t, 0, wm, 1e-6)
	assert.InDelta(t, 1, wo, 1e-6)
}

func TestGenerateTree_Invariants(t *testing.T) {
	const n = 20000
	attrs, err := GenerateTree(n, testTree, newRng())
	require.NoError(t, err)
	require.NoError(t, attrs.Validate())
	require.Len(t, attrs.Direction, n)

	lift := testTree.Height * treeLift
	for i := 0; i < n; i++ {
		p := attrs.Position[i]
		y := p.Y() - lift
		h := (y + testTree.Height/2) / testTree.Height
		require.True(t, h >= -1e-5 && h <= 1+1e-5, "height fraction %v out of range", h)

		maxR := (1 - h) * testTree.Radius
		r := float32(math.Hypot(float64(p.X()), float64(p.Z())))
		d := TreeDistRatio(r, maxR)
		require.True(t, d >= 0 && d <= 1, "distRatio %v", d)

		// near the apex maxR is too small to recover distRatio from positions
		if maxR > 0.05 {
			want := TreeColor(d, testCore, testMid, testOuter)
			assert.InDelta(t, want.X(), attrs.Color[i].X(), 1e-3)
			assert.InDelta(t, want.Y(), attrs.Color[i].Y(), 1e-3)
			assert.InDelta(t, want.Z(), attrs.Color[i].Z(), 1e-3)
		}
		for c := 0; c < 3; c++ {
			lo := min(testCore[c], testMid[c], testOuter[c])
			hi := max(testCore[c], testMid[c], testOuter[c])
			assert.True(t, attrs.Color[i][c] >= lo-1e-5 && attrs.Color[i][c] <= hi+1e-5)
		}

		assert.InDelta(t, 1, attrs.Direction[i].Len(), 1e-4, "direction %d not unit", i)

		require.True(t, attrs.Randomness[i] >= 0 && attrs.Randomness[i] < 1)
		require.Greater(t, attrs.Size[i], float32(0))
	}
}

func TestGenerateTree_DirectionsBiasedUpwards(t *testing.T) {
	attrs, err := GenerateTree(10000, testTree, newRng())
	require.NoError(t, err)

	var sumY float64
	for _, d := range attrs.Direction {
		sumY += float64(d.Y())
	}
	assert.Greater(t, sumY/float64(len(attrs.Direction)), 0.1)
}

func TestGenerateTree_AreaUniformSlices(t *testing.T) {
	// r/maxR = sqrt(U), so (r/maxR)^2 is uniform on [0,1].
	const n = 20000
	attrs, err := GenerateTree(n, testTree, newRng())
	require.NoError(t, err)

	lift := testTree.Height * treeLift
	var bins [10]int
	for _, p := range attrs.Position {
		h := (p.Y() - lift + testTree.Height/2) / testTree.Height
		maxR := (1 - h) * testTree.Radius
		if maxR < 0.05 {
			continue
		}
		r := float32(math.Hypot(float64(p.X()), float64(p.Z())))
		u := (r / maxR) * (r / maxR)
		bins[binOf(u, 10)]++
	}
	assertFlat(t, bins[:], 0.12)
}

func TestGenerateStarCore(t *testing.T) {
	color := mgl32.Vec3{1, 0.95, 0.7}
	attrs, err := GenerateStarCore(StarParams{Radius: 0.8, Color: color}, newRng())
	require.NoError(t, err)
	require.Equal(t, StarCoreCount, attrs.Count)
	for i, p := range attrs.Position {
		assert.LessOrEqual(t, p.Len(), float32(StarCoreRadius+1e-6))
		assert.Equal(t, color, attrs.Color[i])
	}
}

func TestGenerateStar_VolumeUniform(t *testing.T) {
	const n = 20000
	params := StarParams{Radius: 0.8}
	attrs, err := GenerateStar(n, params, newRng())
	require.NoError(t, err)
	require.NoError(t, attrs.Validate())

	// P(r <= x) = (x/R)^3, so (r/R)^3 is uniform.
	var bins [10]int
	for _, p := range attrs.Position {
		r := p.Len() / params.Radius
		require.LessOrEqual(t, r, float32(1+1e-5))
		bins[binOf(r*r*r, 10)]++
	}
	assertFlat(t, bins[:], 0.1)

	// surface-biased sampling would put far more than 12.5% inside half the radius
	inner := 0
	for _, p := range attrs.Position {
		if p.Len() < params.Radius/2 {
			inner++
		}
	}
	assert.InDelta(t, 0.125, float64(inner)/n, 0.015)
}

func TestGenerateRings_BandsAndAreaUniform(t *testing.T) {
	const n = 30000
	params := RingParams{TreeRadius: 4.5}
	attrs, err := GenerateRings(n, params, newRng())
	require.NoError(t, err)
	require.NoError(t, attrs.Validate())

	var innerBins, outerBins [8]int
	inner, outer := 0, 0
	for _, p := range attrs.Position {
		s := float32(math.Hypot(float64(p.X()), float64(p.Z()))) / params.TreeRadius
		switch {
		case s >= InnerRing.MinScale-1e-4 && s <= InnerRing.MaxScale+1e-4:
			inner++
			assert.InDelta(t, ringBaseY, p.Y(), float64(InnerRing.YSpread/2)+1e-5)
			innerBins[binOf(annulusFraction(s, InnerRing), 8)]++
		case s >= OuterRing.MinScale-1e-4 && s <= OuterRing.MaxScale+1e-4:
			outer++
			assert.InDelta(t, ringBaseY, p.Y(), float64(OuterRing.YSpread/2)+1e-5)
			outerBins[binOf(annulusFraction(s, OuterRing), 8)]++
		default:
			t.Fatalf("radius scale %v outside both rings", s)
		}
	}

	assert.InDelta(t, 0.6, float64(inner)/n, 0.02)
	assert.InDelta(t, 0.4, float64(outer)/n, 0.02)
	assertFlat(t, innerBins[:], 0.1)
	assertFlat(t, outerBins[:], 0.12)
}

// annulusFraction maps a radius scale to the fraction of the band's area
// inside it, which is uniform for area-uniform sampling.
func annulusFraction(s float32, b RingBand) float32 {
	lo2, hi2 := b.MinScale*b.MinScale, b.MaxScale*b.MaxScale
	return (s*s - lo2) / (hi2 - lo2)
}

func TestGenerateSnow_BoundsAndSpeeds(t *testing.T) {
	attrs, err := GenerateSnow(5000, SnowParams{BoxSize: 30}, newRng())
	require.NoError(t, err)
	require.NoError(t, attrs.Validate())
	require.Len(t, attrs.Speed, 5000)

	for i, p := range attrs.Position {
		for axis := 0; axis < 3; axis++ {
			assert.True(t, p[axis] >= -15 && p[axis] <= 15)
		}
		assert.True(t, attrs.Speed[i] >= SnowMinSpeed && attrs.Speed[i] < SnowMaxSpeed)
	}
}

func TestSnowfall_WrapsAtBottom(t *testing.T) {
	attrs := core.NewAttributes(3)
	attrs.Speed = []float32{0.05, 0.02, 0.07}
	attrs.Position[0] = mgl32.Vec3{1, -15.01, 2}
	attrs.Position[1] = mgl32.Vec3{0, 3, 0}
	attrs.Position[2] = mgl32.Vec3{0, -14.99, 0}

	fall := NewSnowfall(30)
	fall.Step(attrs, 1)

	assert.Equal(t, float32(15), attrs.Position[0].Y())
	assert.Equal(t, mgl32.Vec3{1, 15, 2}, attrs.Position[0], "only y changes")
	assert.InDelta(t, 2.98, attrs.Position[1].Y(), 1e-5)
	assert.Equal(t, float32(15), attrs.Position[2].Y())

	for tick := 0; tick < 2000; tick++ {
		fall.Step(attrs, 1)
		for _, p := range attrs.Position {
			require.GreaterOrEqual(t, p.Y(), float32(-15))
			require.LessOrEqual(t, p.Y(), float32(15))
		}
	}
}

func TestGenerateWings_Shape(t *testing.T) {
	const n = 20000
	params := WingParams{Span: 8, HeightOffset: 7.8}
	attrs, err := GenerateWings(n, params, newRng())
	require.NoError(t, err)
	require.NoError(t, attrs.Validate())

	left := 0
	for i, p := range attrs.Position {
		side := attrs.Side[i]
		require.True(t, side == 1 || side == -1)
		if side < 0 {
			left++
		}
		assert.True(t, p.X()*side >= 0, "x must be mirrored by side")
		assert.LessOrEqual(t, p.X()*side, params.Span+1e-4)

		r := attrs.Feather[i]
		require.True(t, r >= 0 && r <= 1)

		tSpan := p.X() * side / params.Span
		top := WingBoneY(tSpan) + params.HeightOffset
		bottom := top - WingFeatherLength(tSpan)
		assert.True(t, p.Y() <= top+1e-3 && p.Y() >= bottom-1e-3, "particle %d outside the wing silhouette", i)
		assert.Less(t, p.Z(), float32(0), "wings sit behind the tree")
	}
	assert.InDelta(t, 0.5, float64(left)/n, 0.02)
}

func TestWingFeatherLength_ShortAtEnds(t *testing.T) {
	assert.InDelta(t, 0, WingFeatherLength(0), 1e-6)
	mid := WingFeatherLength(0.4)
	assert.Greater(t, mid, WingFeatherLength(0.05))
	assert.Greater(t, mid, WingFeatherLength(0.95))
}

func TestGenerators_RepeatCallsKeepInvariants(t *testing.T) {
	rng := newRng()
	type gen func() (*core.Attributes, error)
	gens := map[string]gen{
		"tree":  func() (*core.Attributes, error) { return GenerateTree(777, testTree, rng) },
		"rings": func() (*core.Attributes, error) { return GenerateRings(777, RingParams{TreeRadius: 4.5}, rng) },
		"snow":  func() (*core.Attributes, error) { return GenerateSnow(777, SnowParams{BoxSize: 30}, rng) },
		"star":  func() (*core.Attributes, error) { return GenerateStar(777, StarParams{Radius: 0.8}, rng) },
		"wings": func() (*core.Attributes, error) { return GenerateWings(777, WingParams{Span: 8}, rng) },
	}
	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			a, err := g()
			require.NoError(t, err)
			b, err := g()
			require.NoError(t, err)

			assert.Equal(t, a.Count, b.Count)
			assert.Len(t, a.Position, 777)
			assert.Len(t, b.Position, 777)
			assert.Equal(t, len(a.Direction), len(b.Direction))
			assert.Equal(t, len(a.Side), len(b.Side))
			assert.Equal(t, len(a.Speed), len(b.Speed))
			assert.NoError(t, a.Validate())
			assert.NoError(t, b.Validate())
			assert.NotEqual(t, a.Position, b.Position, "independent draws")
		})
	}
}

func binOf(u float32, n int) int {
	b := int(u * float32(n))
	if b < 0 {
		return 0
	}
	if b >= n {
		return n - 1
	}
	return b
}

// assertFlat checks every bin is within tol (relative) of the mean count.
func assertFlat(t *testing.T, bins []int, tol float64) {
	t.Helper()
	total := 0
	for _, c := range bins {
		total += c
	}
	mean := float64(total) / float64(len(bins))
	for i, c := range bins {
		assert.InDelta(t, mean, float64(c), mean*tol, "bin %d of %v", i, bins)
	}
}
