// pkg/physics/orientation.go
package physics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUndefinedDirection is returned when a target coincides with the body
// position, leaving no direction to turn toward.
var ErrUndefinedDirection = errors.New("undefined direction: target coincides with position")

// AngleMode selects how the signed angle between two directions is extracted
type AngleMode string

const (
	// AngleModeAtan2 uses atan2(cross, dot); exact over the whole circle.
	AngleModeAtan2 AngleMode = "atan2"
	// AngleModeRotor builds the rotation between the directions and reads the
	// angle back from its bivector part with asin.
	AngleModeRotor AngleMode = "rotor"
)

// ParseAngleMode converts a config string to an AngleMode.
func ParseAngleMode(s string) (AngleMode, error) {
	switch AngleMode(s) {
	case AngleModeAtan2, "":
		return AngleModeAtan2, nil
	case AngleModeRotor:
		return AngleModeRotor, nil
	default:
		return "", fmt.Errorf("unknown angle mode %q", s)
	}
}

// SignedAngle returns the shortest signed angle turning unit vector from onto
// unit vector to, positive counter-clockwise.
func SignedAngle(from, to mgl32.Vec3, mode AngleMode) float32 {
	if mode == AngleModeRotor {
		return rotorAngle(from, to)
	}
	cross := from.X()*to.Y() - from.Y()*to.X()
	return math32.Atan2(cross, from.Dot(to))
}

// rotorAngle doubles the asin of the rotor's XY bivector component. The
// magnitude loses precision past a quarter turn. Within a few degrees of
// antiparallel QuatBetweenVectors falls back to a fixed axis whose sign
// follows the current facing, so the sign is taken from the planar cross
// product instead.
func rotorAngle(from, to mgl32.Vec3) float32 {
	rotor := mgl32.QuatBetweenVectors(from, to)
	half := mgl32.Clamp(rotor.V.Z(), -1, 1)
	angle := 2 * math32.Asin(math32.Abs(half))

	cross := from.X()*to.Y() - from.Y()*to.X()
	switch {
	case cross > 0:
		return angle
	case cross < 0:
		return -angle
	}
	return 2 * math32.Asin(half)
}

// Facing returns the unit direction the body is currently facing
func (s *MovementState) Facing() mgl32.Vec3 {
	return RotateZ(Forward, s.Heading)
}

// UpdateHeading turns the body toward target at the fixed turn rate and
// returns the new heading. The controller is bang-bang: it never slows near
// the target, so the heading can oscillate by up to TurnRate*deltaTime.
func UpdateHeading(state *MovementState, target mgl32.Vec3, deltaTime float32, mode AngleMode) (float32, error) {
	diff, err := HeadingError(state, target, mode)
	if err != nil {
		return state.Heading, err
	}

	var rate float32
	switch {
	case diff > 0:
		rate = state.TurnRate
	case diff < 0:
		rate = -state.TurnRate
	}

	state.Heading = WrapAngle(state.Heading + rate*deltaTime)
	return state.Heading, nil
}

// HeadingError returns the signed angle still to turn to face target.
func HeadingError(state *MovementState, target mgl32.Vec3, mode AngleMode) (float32, error) {
	offset := target.Sub(state.Position)
	offset[2] = 0
	if PlanarLength(offset) == 0 {
		return 0, ErrUndefinedDirection
	}
	return SignedAngle(state.Facing(), offset.Normalize(), mode), nil
}
