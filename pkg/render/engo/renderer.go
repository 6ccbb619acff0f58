// pkg/render/engo/renderer.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/physics"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

// spriteSystem is the part of common.RenderSystem the renderer uses
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type shipSprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// Placement is where a ship sprite lands on screen for one frame
type Placement struct {
	Center   engo.Point
	Rotation float32 // degrees, clockwise on screen
	Width    float32
	Height   float32
}

// Place projects one object's matrices onto a width x height surface. The
// sprite spans the model's local [-1, 1] square and its texture points down
// at rotation zero.
func Place(m render.Matrices, width, height float32) Placement {
	mvp := m.MVP()

	x, y := render.NDCToPixel(render.ProjectToNDC(mvp, mgl32.Vec3{}), width, height)

	axisX := mvp.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	axisY := mvp.Mul4x1(mgl32.Vec4{0, 1, 0, 0})
	forward := mvp.Mul4x1(physics.Forward.Vec4(0))

	// Screen Y grows downward, so NDC y flips sign.
	sx := forward.X() * width / 2
	sy := -forward.Y() * height / 2

	return Placement{
		Center:   engo.Point{X: x, Y: y},
		Rotation: mgl32.RadToDeg(physics.WrapAngle(math32.Atan2(sy, sx) - math32.Pi/2)),
		Width:    math32.Hypot(axisX.X()*width, axisX.Y()*height),
		Height:   math32.Hypot(axisY.X()*width, axisY.Y()*height),
	}
}

// EngoRenderer implements render.Renderer on top of engo's RenderSystem
type EngoRenderer struct {
	system  spriteSystem
	assets  *AssetManager
	sprites map[entity.ID]*shipSprite
	size    func() (float32, float32)
	logger  *logging.Logger
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(system spriteSystem, assets *AssetManager, logger *logging.Logger) *EngoRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		sprites: make(map[entity.ID]*shipSprite),
		size: func() (float32, float32) {
			return engo.GameWidth(), engo.GameHeight()
		},
		logger: logger,
	}
}

// Draw implements render.Renderer. Sprites are created on first sight and
// removed once their object leaves the frame.
func (r *EngoRenderer) Draw(ctx context.Context, frame render.Frame) error {
	width, height := r.size()

	for _, id := range frame.IDs() {
		m, _ := frame.Matrices(id)
		sprite, ok := r.sprites[id]
		if !ok {
			sprite = r.newSprite()
			r.sprites[id] = sprite
			r.system.Add(&sprite.BasicEntity, &sprite.RenderComponent, &sprite.SpaceComponent)
			r.logger.Debug(ctx, "Sprite created", "object_id", uint64(id))
		}
		sprite.apply(Place(m, width, height))
	}

	for id, sprite := range r.sprites {
		if _, ok := frame.Models[id]; !ok {
			r.system.Remove(sprite.BasicEntity)
			delete(r.sprites, id)
			r.logger.Debug(ctx, "Sprite removed", "object_id", uint64(id))
		}
	}
	return nil
}

func (r *EngoRenderer) newSprite() *shipSprite {
	return &shipSprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: r.assets.ShipSprite(),
			Color:    color.White,
		},
	}
}

func (s *shipSprite) apply(p Placement) {
	s.SpaceComponent.Width = p.Width
	s.SpaceComponent.Height = p.Height
	s.SpaceComponent.Rotation = p.Rotation
	s.SpaceComponent.SetCenter(p.Center)

	if d := s.RenderComponent.Drawable; d != nil && d.Width() > 0 && d.Height() > 0 {
		s.RenderComponent.Scale = engo.Point{X: p.Width / d.Width(), Y: p.Height / d.Height()}
	}
}

// Sprites returns how many sprites are live
func (r *EngoRenderer) Sprites() int {
	return len(r.sprites)
}

// Close implements render.Renderer.
func (r *EngoRenderer) Close() error {
	for id, sprite := range r.sprites {
		r.system.Remove(sprite.BasicEntity)
		delete(r.sprites, id)
	}
	return nil
}
