// pkg/render/camera.go
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidCamera is returned for a camera whose matrices would be undefined
var ErrInvalidCamera = errors.New("invalid camera")

// Camera holds a fixed look-at view and an orthographic projection. The
// vertical half-height of the view volume is always 1; AspectRatio only
// widens or narrows the horizontal extent.
type Camera struct {
	eye         mgl32.Vec3
	lookAt      mgl32.Vec3
	up          mgl32.Vec3
	aspectRatio float32
	clipNear    float32
	clipFar     float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// NewCamera validates the configuration and computes both matrices once.
func NewCamera(eye, lookAt, up mgl32.Vec3, aspectRatio, clipNear, clipFar float32) (*Camera, error) {
	c := &Camera{
		eye:         eye,
		lookAt:      lookAt,
		up:          up,
		aspectRatio: aspectRatio,
		clipNear:    clipNear,
		clipFar:     clipFar,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.view = mgl32.LookAtV(c.eye, c.lookAt, c.up)
	c.projection = mgl32.Ortho(-c.aspectRatio, c.aspectRatio, -1, 1, c.clipNear, c.clipFar)
	return c, nil
}

// DefaultCamera looks down -Z at the origin from one unit away with a 16:9
// aspect ratio.
func DefaultCamera() *Camera {
	c, err := NewCamera(
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		16.0/9.0, 0.1, 100,
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Camera) validate() error {
	dir := c.lookAt.Sub(c.eye)
	switch {
	case dir.Len() == 0:
		return fmt.Errorf("%w: eye and look-at coincide at %v", ErrInvalidCamera, c.eye)
	case c.up.Len() == 0:
		return fmt.Errorf("%w: zero up vector", ErrInvalidCamera)
	case dir.Cross(c.up).Len() == 0:
		return fmt.Errorf("%w: up %v is parallel to view direction %v", ErrInvalidCamera, c.up, dir)
	case !(c.clipNear < c.clipFar):
		return fmt.Errorf("%w: near clip %f must be less than far clip %f", ErrInvalidCamera, c.clipNear, c.clipFar)
	case !(c.aspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio %f must be positive", ErrInvalidCamera, c.aspectRatio)
	}
	return nil
}

// BuildMatrices returns the cached view and projection matrices
func (c *Camera) BuildMatrices() (view, projection mgl32.Mat4) {
	return c.view, c.projection
}

// AspectRatio returns the horizontal scale of the view volume
func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// Eye returns the camera position
func (c *Camera) Eye() mgl32.Vec3 {
	return c.eye
}

// LookAt returns the point the camera faces
func (c *Camera) LookAt() mgl32.Vec3 {
	return c.lookAt
}

// Up returns the camera up vector
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

// ClipRange returns the near and far clip distances
func (c *Camera) ClipRange() (near, far float32) {
	return c.clipNear, c.clipFar
}
