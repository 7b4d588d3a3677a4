package obj

import (
	"math"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/jakecoffman/cp"
)

// Direction is the facing of a character. It selects the sprite sheet row.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Row is the sheet row drawn for this facing.
func (d Direction) Row() int {
	switch d {
	case DirLeft:
		return 1
	case DirDown:
		return 2
	case DirRight:
		return 3
	default:
		return 0
	}
}

// Vector is the unit step for d in screen coordinates (y grows downward).
func (d Direction) Vector() cp.Vector {
	switch d {
	case DirUp:
		return cp.Vector{X: 0, Y: -1}
	case DirDown:
		return cp.Vector{X: 0, Y: 1}
	case DirLeft:
		return cp.Vector{X: -1, Y: 0}
	case DirRight:
		return cp.Vector{X: 1, Y: 0}
	default:
		return cp.Vector{}
	}
}

// DirectionOf returns the facing closest to v, favoring horizontal on ties.
func DirectionOf(v cp.Vector) Direction {
	if v.LengthSq() == 0 {
		return DirNone
	}
	if math.Abs(v.X) >= math.Abs(v.Y) {
		if v.X < 0 {
			return DirLeft
		}
		return DirRight
	}
	if v.Y < 0 {
		return DirUp
	}
	return DirDown
}

// Character is the shared body of the player and enemies: a position, a
// facing and an axis-aligned body hitbox anchored on the position.
type Character struct {
	ID     int
	Pos    cp.Vector
	Facing Direction
	Idle   bool
	Body   collision.HitboxParams
	Anim   *component.Animation

	// Kind labels rejected body params in the log.
	Kind   string
	Tester *collision.Tester
}

func NewCharacter(id int, pos cp.Vector, body collision.HitboxParams, anim *component.Animation) *Character {
	c := &Character{
		ID:     id,
		Pos:    pos,
		Facing: DirDown,
		Idle:   true,
		Body:   body,
		Anim:   anim,
	}
	c.Anim.SetRow(c.Facing.Row())
	return c
}

// MoveBy translates the character by delta and advances the walk cycle by dt.
// DirNone means standing still: the position is unchanged and the animation
// returns to its first frame.
func (c *Character) MoveBy(delta cp.Vector, dir Direction, dt float64) {
	if dir == DirNone {
		c.Idle = true
		c.Anim.Reset()
		return
	}
	c.Idle = false
	c.Anim.Update(dt)
	c.Pos = c.Pos.Add(delta)
	if c.Facing != dir {
		c.Facing = dir
		c.Anim.SetRow(dir.Row())
	}
}

// Hitbox is the body box; characters never rotate. Nil when the body params
// are unusable.
func (c *Character) Hitbox() collision.Hitbox {
	o, err := collision.ProjectBody(c.Pos, c.Body)
	if err != nil {
		c.Tester.Report(c.Kind, c.ID, err)
		return nil
	}
	return o
}
