package physics

import "github.com/go-gl/mathgl/mgl32"

const (
	// DefaultMaxSpeed caps body speed in units per second
	DefaultMaxSpeed float32 = 0.2
	// DefaultTurnRate is the fixed angular speed in radians per second
	DefaultTurnRate float32 = 3.0
)

// MovementState tracks body physics
type MovementState struct {
	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3
	Heading      float32 // radians, counter-clockwise about +Z
	Scale        mgl32.Vec3
	MaxSpeed     float32
	TurnRate     float32
}

// NewMovementState returns a body at rest at position with default limits.
func NewMovementState(position, scale mgl32.Vec3) *MovementState {
	return &MovementState{
		Position: position,
		Scale:    scale,
		MaxSpeed: DefaultMaxSpeed,
		TurnRate: DefaultTurnRate,
	}
}

// UpdateMovement advances the body by deltaTime seconds. rawInput is the
// un-normalized direction built from the directional flags; it is normalized
// here so diagonal input is no faster than axis-aligned input. There is no
// drag, a body without input keeps its velocity.
func UpdateMovement(state *MovementState, deltaTime float32, rawInput mgl32.Vec3) {
	state.Acceleration = NormalizeOrZero(rawInput)

	state.Velocity = state.Velocity.Add(state.Acceleration.Mul(deltaTime))
	state.Velocity = ClampMagnitude(state.Velocity, state.MaxSpeed)

	state.Position = state.Position.Add(state.Velocity.Mul(deltaTime))
}

// Speed returns the current velocity magnitude
func (s *MovementState) Speed() float32 {
	return s.Velocity.Len()
}
