package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/physics"
)

// ModelMatrix places a body in world space: scale, then rotate by heading
// about +Z, then translate to position. Under the column-vector convention
// that is T * R * S. A zero scale is treated as unit scale.
func ModelMatrix(state *physics.MovementState) mgl32.Mat4 {
	p := state.Position
	translate := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	rotate := mgl32.HomogRotate3DZ(state.Heading)

	model := translate.Mul4(rotate)
	if s := state.Scale; s != (mgl32.Vec3{}) {
		model = model.Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
	}
	return model
}

// Matrices is the per-object contract handed to a renderer. Each matrix is a
// column-major [16]float32, ready to bind as a shader uniform.
type Matrices struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// MVP returns Projection * View * Model
func (m Matrices) MVP() mgl32.Mat4 {
	return m.Projection.Mul4(m.View).Mul4(m.Model)
}

// Frame is everything a renderer needs for one draw pass
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Models     map[entity.ID]mgl32.Mat4
}

// NewFrame starts an empty frame using the camera's cached matrices
func NewFrame(camera *Camera) Frame {
	view, projection := camera.BuildMatrices()
	return Frame{
		View:       view,
		Projection: projection,
		Models:     make(map[entity.ID]mgl32.Mat4),
	}
}

// Add records the model matrix for one object
func (f Frame) Add(id entity.ID, state *physics.MovementState) {
	f.Models[id] = ModelMatrix(state)
}

// Matrices returns the full triple for one object
func (f Frame) Matrices(id entity.ID) (Matrices, bool) {
	model, ok := f.Models[id]
	if !ok {
		return Matrices{}, false
	}
	return Matrices{Model: model, View: f.View, Projection: f.Projection}, true
}

// IDs returns the object IDs in ascending order
func (f Frame) IDs() []entity.ID {
	ids := make([]entity.ID, 0, len(f.Models))
	for id := range f.Models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ProjectToNDC transforms point by mvp and applies the perspective divide
func ProjectToNDC(mvp mgl32.Mat4, point mgl32.Vec3) mgl32.Vec3 {
	clip := mvp.Mul4x1(point.Vec4(1))
	return clip.Vec3().Mul(1 / clip.W())
}

// NDCToPixel maps normalized device coordinates onto a width x height surface
// whose Y axis grows downward.
func NDCToPixel(ndc mgl32.Vec3, width, height float32) (x, y float32) {
	return (ndc.X() + 1) / 2 * width, (1 - ndc.Y()) / 2 * height
}
