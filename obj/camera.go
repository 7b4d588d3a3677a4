package obj

import (
	"math"

	"github.com/Unlucky-Polypus/Survivor/common"
	"github.com/jakecoffman/cp"
)

// Camera maps world coordinates to the screen, following a target and
// staying inside the world bounds.
type Camera struct {
	Pos cp.Vector

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		Pos:     cp.Vector{X: float64(screenW) / 2, Y: float64(screenH) / 2},
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

func (c *Camera) halfView() cp.Vector {
	return cp.Vector{X: float64(c.screenW) / c.zoom / 2, Y: float64(c.screenH) / c.zoom / 2}
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() cp.Vector {
	return c.Pos.Sub(c.halfView())
}

// View is the visible world rectangle.
func (c *Camera) View() cp.BB {
	half := c.halfView()
	return cp.NewBBForExtents(c.Pos, half.X, half.Y)
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p cp.Vector) cp.Vector {
	return p.Sub(c.ViewTopLeft()).Mult(c.zoom)
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(p cp.Vector) cp.Vector {
	return c.ViewTopLeft().Add(p.Mult(1 / c.zoom))
}

// Update moves the camera toward target. Call from the fixed-rate Update
// loop to get consistent smoothing.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 {
		c.Pos = target
	} else {
		c.Pos = cp.Vector{
			X: common.Lerp(c.Pos.X, target.X, c.smooth),
			Y: common.Lerp(c.Pos.Y, target.Y, c.smooth),
		}
	}
	c.constrain()
}

// SnapTo immediately centers the camera on p, constrained like Update.
func (c *Camera) SnapTo(p cp.Vector) {
	c.Pos = p
	c.constrain()
}

func (c *Camera) constrain() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.Pos.X = math.Round(c.Pos.X*c.zoom) / c.zoom
	c.Pos.Y = math.Round(c.Pos.Y*c.zoom) / c.zoom

	half := c.halfView()
	c.Pos.X = clampAxis(c.Pos.X, half.X, c.worldW)
	c.Pos.Y = clampAxis(c.Pos.Y, half.Y, c.worldH)
}

// clampAxis keeps a view of half-size half inside [0, world]. A world
// smaller than the view is centered.
func clampAxis(v, half, world float64) float64 {
	if world <= 0 {
		return v
	}
	if world-half < half {
		return world / 2
	}
	return common.Clamp(v, half, world-half)
}
