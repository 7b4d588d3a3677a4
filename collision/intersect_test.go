package collision

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func box(x, y, hx, hy, rot float64) OBB {
	return OBB{Center: cp.Vector{X: x, Y: y}, Half: cp.Vector{X: hx, Y: hy}, Rotation: rot}
}

func circle(x, y, r float64) Circle {
	return Circle{Center: cp.Vector{X: x, Y: y}, Radius: r}
}

func TestIntersectsScenarios(t *testing.T) {
	unit := box(0, 0, 1, 1, 0)
	diamond := box(0, 0, 1, 1, math.Pi/4)

	cases := []struct {
		name string
		a, b Hitbox
		want bool
	}{
		{"circle_one_unit_away", unit, circle(3, 0, 1), false},
		{"circle_over_edge", unit, circle(1.5, 0, 1), true},
		{"circle_contains_box", unit, circle(0.2, 0.1, 10), true},
		{"box_contains_circle", box(0, 0, 10, 10, 0), circle(1, 1, 0.5), true},
		{"circle_near_axis_aligned_corner", unit, circle(1.5, 1.5, 0.3), false},
		{"circle_near_rotated_edge", diamond, circle(1.5, 1.5, 0.3), false},
		{"circle_beyond_rotated_corner", diamond, circle(math.Sqrt2+0.35, 0, 0.3), false},
		{"circle_touching_rotated_corner", diamond, circle(1.6, 0, 0.3), true},
		{"circle_missing_unrotated_box", unit, circle(1.6, 0, 0.3), false},
		{"boxes_overlap", unit, box(1.5, 0.5, 1, 1, 0), true},
		{"boxes_apart", unit, box(2.5, 0, 1, 1, 0), false},
		{"rotated_corner_reaches", unit, box(2.2, 0, 1, 1, math.Pi/4), true},
		{"rotated_corner_short", unit, box(2.5, 0, 1, 1, math.Pi/4), false},
		{"separated_only_on_second_box_axis", unit, box(1.9, 1.9, 1, 1, math.Pi/4), false},
		{"circles_overlap", circle(0, 0, 2), circle(3, 0, 1.5), true},
		{"circles_apart", circle(0, 0, 2), circle(5, 0, 1.5), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Intersects(c.a, c.b))
			require.Equal(t, c.want, Intersects(c.b, c.a), "intersection must be symmetric")
		})
	}
}

func TestBoxAxesAloneMissRotatedCorner(t *testing.T) {
	diamond := box(0, 0, 1, 1, math.Pi/4)
	c := circle(math.Sqrt2+0.35, 0, 0.3)
	corners := diamond.Corners()
	for _, axis := range diamond.Axes() {
		require.True(t, circleOverlapOnAxis(corners, c, axis))
	}
	require.False(t, Intersects(diamond, c))
}

func TestCircleCenterOnBoxEdge(t *testing.T) {
	unit := box(0, 0, 1, 1, 0)
	for _, center := range []cp.Vector{{X: 1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 0.3}} {
		c := Circle{Center: center, Radius: 0.5}
		corners := unit.Corners()
		boxAxesOnly := true
		for _, axis := range unit.Axes() {
			boxAxesOnly = boxAxesOnly && circleOverlapOnAxis(corners, c, axis)
		}
		require.Equal(t, boxAxesOnly, Intersects(unit, c), "center %v", center)
		require.True(t, Intersects(unit, c))
	}
}

func TestAxisAlignedMatchesBB(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		a := box(float64(rng.IntN(21)-10), float64(rng.IntN(21)-10), float64(rng.IntN(6)), float64(rng.IntN(6)), 0)
		b := box(float64(rng.IntN(21)-10), float64(rng.IntN(21)-10), float64(rng.IntN(6)), float64(rng.IntN(6)), 0)
		want := cp.NewBBForExtents(a.Center, a.Half.X, a.Half.Y).Intersects(cp.NewBBForExtents(b.Center, b.Half.X, b.Half.Y))
		require.Equal(t, want, Intersects(a, b), "a=%+v b=%+v", a, b)
	}
}

func TestTouchingBoxesCollide(t *testing.T) {
	unit := box(0, 0, 1, 1, 0)
	assert.True(t, Intersects(unit, box(2, 0, 1, 1, 0)), "shared edge")
	assert.True(t, Intersects(unit, box(2, 2, 1, 1, 0)), "shared corner")
	assert.False(t, Intersects(unit, box(2.0001, 0, 1, 1, 0)))
}

func randomHitbox(rng *rand.Rand) Hitbox {
	x := rng.Float64()*20 - 10
	y := rng.Float64()*20 - 10
	if rng.IntN(2) == 0 {
		return circle(x, y, rng.Float64()*4)
	}
	return box(x, y, rng.Float64()*4, rng.Float64()*4, rng.Float64()*2*math.Pi)
}

func TestIntersectsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		a, b := randomHitbox(rng), randomHitbox(rng)
		require.Equal(t, Intersects(a, b), Intersects(b, a), "a=%+v b=%+v", a, b)
	}
}

func translate(h Hitbox, d cp.Vector) Hitbox {
	switch h := h.(type) {
	case OBB:
		h.Center = h.Center.Add(d)
		return h
	case Circle:
		h.Center = h.Center.Add(d)
		return h
	}
	return h
}

func TestTranslationInvariance(t *testing.T) {
	pairs := []struct {
		a, b Hitbox
	}{
		{box(0, 0, 1, 1, 0), circle(3, 0, 1)},
		{box(0, 0, 1, 1, 0), circle(1.5, 0, 1)},
		{box(0, 0, 1, 1, math.Pi/4), circle(1.6, 0, 0.3)},
		{box(0, 0, 1, 1, math.Pi/4), circle(math.Sqrt2+0.35, 0, 0.3)},
		{box(0, 0, 1, 1, 0), box(2.2, 0, 1, 1, math.Pi/4)},
		{box(0, 0, 1, 1, 0), box(2.5, 0, 1, 1, math.Pi/4)},
		{circle(0, 0, 2), circle(3, 0, 1.5)},
		{circle(0, 0, 2), circle(5, 0, 1.5)},
	}
	shifts := []cp.Vector{{X: 1000, Y: -250}, {X: -3.5, Y: 7.25}, {X: 0.125, Y: 0}}

	for _, p := range pairs {
		base := Intersects(p.a, p.b)
		for _, d := range shifts {
			require.Equal(t, base, Intersects(translate(p.a, d), translate(p.b, d)), "pair %+v shift %v", p, d)
		}
	}
}

func TestCircleTangency(t *testing.T) {
	a := circle(0, 0, 5)

	cases := []struct {
		name string
		b    Circle
		want bool
	}{
		{"centers_one_radius_apart", circle(5, 0, 5), true},
		{"exactly_tangent", circle(10, 0, 5), true},
		{"just_apart", circle(10.001, 0, 5), false},
		{"concentric", circle(0, 0, 1), true},
		{"zero_radius_on_rim", circle(0, 5, 0), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Intersects(a, c.b))
			require.Equal(t, c.want, Intersects(c.b, a))
		})
	}
}

func TestLegacyCircleOverlapIsAsymmetric(t *testing.T) {
	big := circle(0, 0, 5)
	small := circle(3, 0, 1)

	require.False(t, LegacyCircleOverlap(big, small))
	require.True(t, LegacyCircleOverlap(small, big))
	require.True(t, Intersects(big, small))

	// Touching at one radius counts under the legacy rule.
	require.True(t, LegacyCircleOverlap(big, circle(5, 0, 5)))
}

func TestRotationOnlyAffectsBoxes(t *testing.T) {
	c := circle(1.6, 0, 0.3)
	other := circle(1.9, 0, 0.1)
	require.True(t, Intersects(c, other))
	for _, rot := range []float64{0, 1, math.Pi} {
		o := box(other.Center.X, other.Center.Y, other.Radius, other.Radius, rot)
		require.True(t, Intersects(c, o), "rotation %v", rot)
	}

	require.False(t, Intersects(box(0, 0, 1, 1, 0), c))
	require.True(t, Intersects(box(0, 0, 1, 1, math.Pi/4), c))
}

func TestDegenerateBoxes(t *testing.T) {
	segment := box(0, 0, 2, 0, 0)
	point := box(0, 0, 0, 0, 0.3)

	require.True(t, Intersects(segment, circle(0, 0.5, 1)))
	require.False(t, Intersects(segment, circle(0, 3, 1)))
	require.True(t, Intersects(segment, box(0, 0, 1, 1, math.Pi/6)))
	require.True(t, Intersects(point, point))
	require.False(t, Intersects(point, box(5, 5, 0, 0, 0)))
	require.True(t, Intersects(point, circle(0, 0, 0)))
}

func TestInvalidHitboxesAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tester := NewTester(zap.New(core))

	cases := []struct {
		name string
		a, b Hitbox
	}{
		{"negative_extent", box(0, 0, -1, 1, 0), box(0, 0, 1, 1, 0)},
		{"negative_radius", circle(0, 0, -2), box(0, 0, 1, 1, 0)},
		{"nan_center", circle(math.NaN(), 0, 1), circle(0, 0, 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := logs.Len()
			require.NotPanics(t, func() {
				require.False(t, tester.Intersects(c.a, c.b))
				require.False(t, tester.Intersects(c.b, c.a))
			})
			require.Equal(t, before+2, logs.Len())
		})
	}
	require.Equal(t, "collision", logs.All()[0].LoggerName)
}

func TestNilHitboxLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tester := NewTester(zap.New(core))

	require.NotPanics(t, func() {
		require.False(t, tester.Intersects(nil, circle(0, 0, 1)))
	})
	require.Equal(t, 1, logs.FilterLevelExact(zap.DebugLevel).Len())
	require.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestReportLogsCauseOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tester := NewTester(zap.New(core))

	_, err := ProjectWeapon(Transform{SizeRatio: 1}, WeaponHitboxParams{Base: HitboxParams{Size: cp.Vector{X: 1, Y: 1}}, HeightRatio: 1})
	require.ErrorIs(t, err, ErrInvalidRatio)

	tester.Report("sword", 1, err)
	tester.Report("sword", 1, err)
	tester.Report("dagger", 1, err)
	tester.Report("sword", 1, nil)

	entries := logs.FilterMessage("hitbox rejected").All()
	require.Len(t, entries, 2)
	require.Equal(t, "sword", entries[0].ContextMap()["kind"])
	require.ErrorIs(t, loggedError(t, entries[0]), ErrInvalidRatio)

	var nilTester *Tester
	require.NotPanics(t, func() { nilTester.Report("sword", 1, err) })
}

func loggedError(t *testing.T, e observer.LoggedEntry) error {
	t.Helper()
	for _, f := range e.Context {
		if f.Key == "error" {
			err, ok := f.Interface.(error)
			require.True(t, ok)
			return err
		}
	}
	t.Fatalf("entry %q has no error field", e.Message)
	return nil
}

type fixedCollidable struct {
	hb    Hitbox
	calls *int
}

func (f fixedCollidable) Hitbox() Hitbox {
	*f.calls++
	return f.hb
}

func TestCollidesWithAnyShortCircuits(t *testing.T) {
	var calls int
	miss := fixedCollidable{hb: circle(50, 50, 1), calls: &calls}
	hit := fixedCollidable{hb: circle(0, 0, 1), calls: &calls}
	never := fixedCollidable{hb: circle(0, 0, 1), calls: &calls}

	require.True(t, CollidesWithAny(box(0, 0, 1, 1, 0), miss, nil, hit, never))
	require.Equal(t, 2, calls)

	calls = 0
	require.False(t, CollidesWithAny(box(0, 0, 1, 1, 0), miss))
	require.False(t, CollidesWithAny(box(0, 0, 1, 1, 0)))
	require.Equal(t, 1, calls)
}
