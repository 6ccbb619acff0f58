// pkg/render/engo/input.go
package engo

import (
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shipsim/pkg/entity"
)

// Button names registered with engo.Input
const (
	ButtonUp    = "up"
	ButtonDown  = "down"
	ButtonLeft  = "left"
	ButtonRight = "right"
	ButtonQuit  = "quit"
)

// InputSystem samples keyboard and mouse once per engo frame
type InputSystem struct {
	aspect float32

	mu      sync.Mutex
	current entity.Input
}

// NewInputSystem creates a new input system. aspect must match the camera.
func NewInputSystem(aspect float32) *InputSystem {
	return &InputSystem{aspect: aspect}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update polls engo.Input
func (is *InputSystem) Update(dt float32) {
	if engo.Input.Button(ButtonQuit).JustPressed() {
		engo.Exit()
		return
	}

	in := entity.Input{
		Up:    engo.Input.Button(ButtonUp).Down(),
		Down:  engo.Input.Button(ButtonDown).Down(),
		Left:  engo.Input.Button(ButtonLeft).Down(),
		Right: engo.Input.Button(ButtonRight).Down(),
	}
	in = withPointer(in, engo.Input.Mouse.X, engo.Input.Mouse.Y, engo.GameWidth(), engo.GameHeight(), is.aspect)
	is.set(in)
}

func (is *InputSystem) set(in entity.Input) {
	is.mu.Lock()
	is.current = in
	is.mu.Unlock()
}

// Input returns the most recent sample
func (is *InputSystem) Input(time.Time) entity.Input {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.current
}

// withPointer aims in at the pointer when it is inside the surface
func withPointer(in entity.Input, x, y, width, height, aspect float32) entity.Input {
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x > width || y > height {
		return in
	}
	return in.WithTarget(entity.PointerToWorld(x, y, width, height, aspect))
}

// SetupInputBindings sets up the key bindings for the simulation
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}
