// pkg/physics/vector.go
package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Forward is the unit direction a body faces at heading 0
var Forward = mgl32.Vec3{0, -1, 0}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v has
// no planar (X/Y) component. A vector pointing purely along Z counts as "no
// input" and collapses to zero.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.X() == 0 && v.Y() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// ClampMagnitude limits the length of v to max. Vectors at or below the cap are
// returned unchanged.
func ClampMagnitude(v mgl32.Vec3, max float32) mgl32.Vec3 {
	if v.Len() > max {
		return v.Normalize().Mul(max)
	}
	return v
}

// RotateZ rotates v by angle (in radians) counter-clockwise about +Z
func RotateZ(v mgl32.Vec3, angle float32) mgl32.Vec3 {
	sin, cos := math32.Sincos(angle)
	return mgl32.Vec3{
		v.X()*cos - v.Y()*sin,
		v.X()*sin + v.Y()*cos,
		v.Z(),
	}
}

// PlanarLength returns the length of v projected onto the XY plane
func PlanarLength(v mgl32.Vec3) float32 {
	return math32.Hypot(v.X(), v.Y())
}

// WrapAngle maps angle into [-Pi, Pi]
func WrapAngle(angle float32) float32 {
	return math32.Remainder(angle, 2*math32.Pi)
}
