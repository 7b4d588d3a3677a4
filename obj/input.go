package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

// Input holds the input state sampled once per frame.
type Input struct {
	// Move is the requested walking direction; DirNone when idle.
	Move Direction
	// ThrowPressed is true on the frame a throw was requested.
	ThrowPressed bool
	// PausePressed is true on the frame Escape or Start was pressed.
	PausePressed bool
	// Cursor is the mouse position in world coordinates.
	Cursor cp.Vector

	camera *Camera
}

func NewInput(camera *Camera) *Input {
	return &Input{camera: camera}
}

// Update polls keyboard, mouse and the first gamepad.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	i.Cursor = cp.Vector{X: float64(mx), Y: float64(my)}
	if i.camera != nil {
		i.Cursor = i.camera.ScreenToWorld(i.Cursor)
	}

	// One direction at a time, vertical keys first.
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS):
		i.Move = DirDown
	case ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW):
		i.Move = DirUp
	case ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		i.Move = DirRight
	case ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		i.Move = DirLeft
	default:
		i.Move = DirNone
	}

	var gpThrow, gpPause bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if i.Move == DirNone {
			i.Move = DirectionOf(stickDeadzone(cp.Vector{
				X: ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal),
				Y: ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical),
			}))
		}
		gpThrow = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.ThrowPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || gpThrow
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
}

func stickDeadzone(v cp.Vector) cp.Vector {
	if v.LengthSq() < 0.3*0.3 {
		return cp.Vector{}
	}
	return v
}
