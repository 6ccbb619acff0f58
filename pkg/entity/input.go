package entity

import "github.com/go-gl/mathgl/mgl32"

// Input is the per-frame control sample for one entity. It carries no state
// between frames.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	// Target is a world-space point to turn toward, valid when HasTarget is set
	Target    mgl32.Vec3
	HasTarget bool
}

// Direction sums a ±1 contribution per active flag. The result is not
// normalized: up+right yields (1,1,0).
func (in Input) Direction() mgl32.Vec3 {
	var dir mgl32.Vec3
	if in.Up {
		dir[1]++
	}
	if in.Down {
		dir[1]--
	}
	if in.Right {
		dir[0]++
	}
	if in.Left {
		dir[0]--
	}
	return dir
}

// WithTarget returns a copy of in aimed at target
func (in Input) WithTarget(target mgl32.Vec3) Input {
	in.Target = target
	in.HasTarget = true
	return in
}

// PointerToWorld converts pixel coordinates inside a width x height surface
// into the camera's world plane. Horizontal extent is scaled by aspect, the
// vertical extent is always [-1, 1] and pixel Y grows downward.
func PointerToWorld(px, py, width, height, aspect float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(px/width*2 - 1) * aspect,
		-(py/height*2 - 1),
		0,
	}
}
