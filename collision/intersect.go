package collision

import (
	"math"
	"sync"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Interval is a projection of a shape onto an axis.
type Interval struct {
	Min, Max float64
}

// Overlaps reports whether two closed intervals share at least one point.
func (a Interval) Overlaps(b Interval) bool {
	return a.Max >= b.Min && b.Max >= a.Min
}

// Project returns the extent of points along axis.
func Project(points [4]cp.Vector, axis cp.Vector) Interval {
	in := Interval{Min: points[0].Dot(axis)}
	in.Max = in.Min
	for _, p := range points[1:] {
		d := p.Dot(axis)
		in.Min = math.Min(in.Min, d)
		in.Max = math.Max(in.Max, d)
	}
	return in
}

// Tester runs intersection queries and logs hitboxes that violate their
// construction preconditions. The zero value discards diagnostics.
type Tester struct {
	log *zap.Logger

	mu       sync.Mutex
	reported map[string]struct{}
}

// NewTester returns a tester that reports invalid hitboxes to log.
func NewTester(log *zap.Logger) *Tester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tester{log: log.Named("collision")}
}

var defaultTester = &Tester{}

// Intersects reports whether two hitboxes overlap. It is symmetric in its
// arguments. Malformed hitboxes never collide.
func Intersects(a, b Hitbox) bool {
	return defaultTester.Intersects(a, b)
}

// Report logs a hitbox that could not be built from its params. Each kind and
// cause is logged once; later failures are dropped so a broken prefab does
// not flood the log every frame.
func (t *Tester) Report(kind string, id int, err error) {
	if t == nil || err == nil {
		return
	}
	key := kind + "|" + err.Error()
	t.mu.Lock()
	_, seen := t.reported[key]
	if !seen {
		if t.reported == nil {
			t.reported = make(map[string]struct{})
		}
		t.reported[key] = struct{}{}
	}
	t.mu.Unlock()
	if seen {
		return
	}
	t.logger().Warn("hitbox rejected", zap.String("kind", kind), zap.Int("id", id), zap.Error(err))
}

// Intersects reports whether two hitboxes overlap. An invalid hitbox is
// logged and treated as no collision. A nil hitbox never collides; its
// producer reports the cause through Report, so nil is only a debug entry.
func (t *Tester) Intersects(a, b Hitbox) bool {
	if !t.valid(a) || !t.valid(b) {
		return false
	}
	switch a := a.(type) {
	case OBB:
		switch b := b.(type) {
		case OBB:
			return obbIntersectsOBB(a, b)
		case Circle:
			return obbIntersectsCircle(a, b)
		}
	case Circle:
		switch b := b.(type) {
		case OBB:
			return obbIntersectsCircle(b, a)
		case Circle:
			return circleIntersectsCircle(a, b)
		}
	}
	return false
}

func (t *Tester) valid(h Hitbox) bool {
	if h == nil {
		t.logger().Debug("nil hitbox")
		return false
	}
	if err := h.Validate(); err != nil {
		t.logger().Warn("invalid hitbox", zap.Error(err))
		return false
	}
	return true
}

func (t *Tester) logger() *zap.Logger {
	if t == nil || t.log == nil {
		return zap.NewNop()
	}
	return t.log
}

func obbIntersectsOBB(a, b OBB) bool {
	ca := a.Corners()
	cb := b.Corners()
	axesA := a.Axes()
	axesB := b.Axes()
	for _, axis := range [4]cp.Vector{axesA[0], axesA[1], axesB[0], axesB[1]} {
		if !Project(ca, axis).Overlaps(Project(cb, axis)) {
			return false
		}
	}
	return true
}

func obbIntersectsCircle(o OBB, c Circle) bool {
	corners := o.Corners()
	for _, axis := range o.Axes() {
		if !circleOverlapOnAxis(corners, c, axis) {
			return false
		}
	}

	// The closest-point axis is undefined when the center touches the box.
	dir := c.Center.Sub(ClosestPoint(o, c.Center))
	if dir.LengthSq() > axisEpsilon {
		if !circleOverlapOnAxis(corners, c, dir.Normalize()) {
			return false
		}
	}
	return true
}

func circleOverlapOnAxis(corners [4]cp.Vector, c Circle, axis cp.Vector) bool {
	d := c.Center.Dot(axis)
	return Project(corners, axis).Overlaps(Interval{Min: d - c.Radius, Max: d + c.Radius})
}

// circleIntersectsCircle uses the sum of both radii; touching circles collide.
func circleIntersectsCircle(a, b Circle) bool {
	r := a.Radius + b.Radius
	return a.Center.Sub(b.Center).LengthSq() <= r*r
}

// LegacyCircleOverlap is the rule the first version of the game shipped: it
// compares the center distance against the first radius only and reports a
// collision when the centers are at least that far apart. It is not
// symmetric and is kept only so the two rules can be compared in tests.
func LegacyCircleOverlap(a, b Circle) bool {
	return a.Center.Sub(b.Center).Length() >= a.Radius
}
