package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// axisEpsilon is the squared length below which a direction is treated as zero.
const axisEpsilon = 1e-6

var (
	ErrNegativeExtent = errors.New("collision: negative half-extent")
	ErrNegativeRadius = errors.New("collision: negative radius")
	ErrNonFinite      = errors.New("collision: non-finite value")
	ErrInvalidRatio   = errors.New("collision: ratio outside (0,1]")
	ErrInvalidScale   = errors.New("collision: size ratio must be positive")
)

// OBB is an oriented bounding box. Rotation is in radians, counter-clockwise.
type OBB struct {
	Center   cp.Vector
	Half     cp.Vector
	Rotation float64
}

// Circle is a circular hitbox.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// NewOBB validates the box and returns it. Zero half-extents are allowed.
func NewOBB(center, half cp.Vector, rotation float64) (OBB, error) {
	o := OBB{Center: center, Half: half, Rotation: rotation}
	if err := o.Validate(); err != nil {
		return OBB{}, err
	}
	return o, nil
}

// NewCircle validates the circle and returns it. A zero radius is allowed.
func NewCircle(center cp.Vector, radius float64) (Circle, error) {
	c := Circle{Center: center, Radius: radius}
	if err := c.Validate(); err != nil {
		return Circle{}, err
	}
	return c, nil
}

// Validate reports whether the box can be fed to the intersection tester.
func (o OBB) Validate() error {
	if !finiteVec(o.Center) || !finiteVec(o.Half) || !finite(o.Rotation) {
		return fmt.Errorf("%w: obb center=%v half=%v rotation=%v", ErrNonFinite, o.Center, o.Half, o.Rotation)
	}
	if o.Half.X < 0 || o.Half.Y < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeExtent, o.Half)
	}
	return nil
}

// Validate reports whether the circle can be fed to the intersection tester.
func (c Circle) Validate() error {
	if !finiteVec(c.Center) || !finite(c.Radius) {
		return fmt.Errorf("%w: circle center=%v radius=%v", ErrNonFinite, c.Center, c.Radius)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, c.Radius)
	}
	return nil
}

// Corners returns the four world-space corners, counter-clockwise starting
// at the local (-hx, -hy) corner.
func (o OBB) Corners() [4]cp.Vector {
	hx, hy := o.Half.X, o.Half.Y
	rot := cp.ForAngle(o.Rotation)
	local := [4]cp.Vector{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}
	var out [4]cp.Vector
	for i, p := range local {
		out[i] = o.Center.Add(p.Rotate(rot))
	}
	return out
}

// Axes returns the unit normals of the edges corners[0]→corners[1] and
// corners[0]→corners[3]. Opposite edges are parallel, so two axes suffice.
// ok is false when either edge is too short to define a normal.
func Axes(corners [4]cp.Vector) (axes [2]cp.Vector, ok bool) {
	e0 := corners[1].Sub(corners[0])
	e1 := corners[3].Sub(corners[0])
	if e0.LengthSq() < axisEpsilon || e1.LengthSq() < axisEpsilon {
		return axes, false
	}
	axes[0] = e0.Perp().Normalize()
	axes[1] = e1.Perp().Normalize()
	return axes, true
}

// Axes returns the box's two edge normals computed from its rotation. They
// match Axes(o.Corners()) for non-degenerate boxes and stay unit length when
// a half-extent is zero.
func (o OBB) Axes() [2]cp.Vector {
	rot := cp.ForAngle(o.Rotation)
	return [2]cp.Vector{
		rot.Perp(),
		rot.Perp().Perp(),
	}
}

// ClosestPoint returns the point of the box (boundary or interior) nearest p.
func ClosestPoint(o OBB, p cp.Vector) cp.Vector {
	rot := cp.ForAngle(o.Rotation)
	local := p.Sub(o.Center).Unrotate(rot)
	clamped := cp.Vector{
		X: clamp(local.X, -o.Half.X, o.Half.X),
		Y: clamp(local.Y, -o.Half.Y, o.Half.Y),
	}
	return o.Center.Add(clamped.Rotate(rot))
}

// Bounds returns the axis-aligned box enclosing the OBB.
func (o OBB) Bounds() cp.BB {
	c := o.Corners()
	bb := cp.BB{L: c[0].X, B: c[0].Y, R: c[0].X, T: c[0].Y}
	for _, p := range c[1:] {
		bb.L = math.Min(bb.L, p.X)
		bb.R = math.Max(bb.R, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() cp.BB {
	return cp.NewBBForExtents(c.Center, c.Radius, c.Radius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteVec(v cp.Vector) bool {
	return finite(v.X) && finite(v.Y)
}
