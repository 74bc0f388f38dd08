package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

// lookPerPixel converts cursor travel into look axis units.
const lookPerPixel = 0.1

const (
	stickDeadzone = 0.2
	stickLookRate = 2.5
)

var debugSlotKeys = [10]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// InputSystem samples keyboard, mouse and the first gamepad into every Input
// component. It runs on unscaled time so the pause key works while paused.
type InputSystem struct {
	debug bool

	lastX, lastY int
	haveCursor   bool
}

func NewInputSystem(debug bool) *InputSystem {
	return &InputSystem{debug: debug}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	horizontal := axis(ebiten.KeyA, ebiten.KeyArrowLeft, ebiten.KeyD, ebiten.KeyArrowRight)
	forward := axis(ebiten.KeyS, ebiten.KeyArrowDown, ebiten.KeyW, ebiten.KeyArrowUp)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	primaryPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	primaryReleased := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	interactPressed := inpututil.IsKeyJustPressed(ebiten.KeyE)
	teleportPressed := inpututil.IsKeyJustPressed(ebiten.KeyT)
	pausePressed := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	lookX, lookY := 0.0, 0.0
	cx, cy := ebiten.CursorPosition()
	if i.haveCursor && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		lookX = float64(cx-i.lastX) * lookPerPixel
		lookY = float64(cy-i.lastY) * lookPerPixel
	}
	i.lastX, i.lastY, i.haveCursor = cx, cy, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			horizontal = lx
			forward = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			lookX += rx * stickLookRate
			lookY += ry * stickLookRate
		}

		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		primaryPressed = primaryPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		primaryReleased = primaryReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight)
		interactPressed = interactPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		teleportPressed = teleportPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		pausePressed = pausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	slot := -1
	if i.debug {
		for n, key := range debugSlotKeys {
			if inpututil.IsKeyJustPressed(key) {
				slot = n
				break
			}
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Horizontal = horizontal
		input.Forward = forward
		input.LookX = lookX
		input.LookY = lookY
		input.JumpPressed = jumpPressed
		input.PrimaryPressed = primaryPressed
		input.PrimaryReleased = primaryReleased
		input.InteractPressed = interactPressed
		input.TeleportPressed = teleportPressed
		input.PausePressed = pausePressed
		input.DebugSlot = slot
	})
}

func axis(negA, negB, posA, posB ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(negA) || ebiten.IsKeyPressed(negB) {
		v -= 1
	}
	if ebiten.IsKeyPressed(posA) || ebiten.IsKeyPressed(posB) {
		v += 1
	}
	return v
}
