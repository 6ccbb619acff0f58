package engo

import (
	"context"
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/physics"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

const tolerance = 1e-3

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

type fakeSystem struct {
	added   map[uint64]*common.SpaceComponent
	removed int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{added: make(map[uint64]*common.SpaceComponent)}
}

func (f *fakeSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.added[basic.ID()] = space
}

func (f *fakeSystem) Remove(basic ecs.BasicEntity) {
	delete(f.added, basic.ID())
	f.removed++
}

func newTestRenderer(system spriteSystem) *EngoRenderer {
	r := NewEngoRenderer(system, NewAssetManager(), logging.Discard())
	r.size = func() (float32, float32) { return 1280, 720 }
	return r
}

func shipMatrices(position mgl32.Vec3, heading float32) render.Matrices {
	body := physics.NewMovementState(position, mgl32.Vec3{0.1, 0.1, 1})
	body.Heading = heading
	frame := render.NewFrame(render.DefaultCamera())
	frame.Add(1, body)
	m, _ := frame.Matrices(1)
	return m
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
		heading  float32
		center   [2]float32
		rotation float32
	}{
		{"origin_heading_zero", mgl32.Vec3{}, 0, [2]float32{640, 360}, 0},
		{"origin_quarter_turn", mgl32.Vec3{}, math.Pi / 2, [2]float32{640, 360}, -90},
		{"origin_clockwise_quarter", mgl32.Vec3{}, -math.Pi / 2, [2]float32{640, 360}, 90},
		{"offset", mgl32.Vec3{0.5, -0.25, 0}, 0, [2]float32{820, 450}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(shipMatrices(tt.position, tt.heading), 1280, 720)

			if !near(p.Center.X, tt.center[0]) || !near(p.Center.Y, tt.center[1]) {
				t.Errorf("Expected center (%f,%f), got (%f,%f)", tt.center[0], tt.center[1], p.Center.X, p.Center.Y)
			}
			if !near(p.Rotation, tt.rotation) {
				t.Errorf("Expected rotation %f, got %f", tt.rotation, p.Rotation)
			}
			// Scale 0.1 on a 16:9 window is 72 pixels in both directions.
			if !near(p.Width, 72) || !near(p.Height, 72) {
				t.Errorf("Expected 72x72 sprite, got %fx%f", p.Width, p.Height)
			}
		})
	}
}

func TestEngoRenderer_Draw(t *testing.T) {
	system := newFakeSystem()
	r := newTestRenderer(system)

	frame := render.NewFrame(render.DefaultCamera())
	frame.Add(1, physics.NewMovementState(mgl32.Vec3{}, mgl32.Vec3{0.1, 0.1, 1}))
	frame.Add(2, physics.NewMovementState(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.1, 0.1, 1}))

	if err := r.Draw(context.Background(), frame); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if r.Sprites() != 2 || len(system.added) != 2 {
		t.Fatalf("Expected 2 sprites, got %d (system has %d)", r.Sprites(), len(system.added))
	}

	space := &r.sprites[entity.ID(1)].SpaceComponent
	center := space.Center()
	if !near(center.X, 640) || !near(center.Y, 360) {
		t.Errorf("Expected sprite centered at (640,360), got (%f,%f)", center.X, center.Y)
	}

	// Drawing the same objects again reuses the sprites.
	if err := r.Draw(context.Background(), frame); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if len(system.added) != 2 || system.removed != 0 {
		t.Errorf("Expected sprites reused, got %d added and %d removed", len(system.added), system.removed)
	}
}

func TestEngoRenderer_RemovesMissingObjects(t *testing.T) {
	system := newFakeSystem()
	r := newTestRenderer(system)

	frame := render.NewFrame(render.DefaultCamera())
	frame.Add(1, physics.NewMovementState(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	frame.Add(2, physics.NewMovementState(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	if err := r.Draw(context.Background(), frame); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	next := render.NewFrame(render.DefaultCamera())
	next.Add(2, physics.NewMovementState(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	if err := r.Draw(context.Background(), next); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	if r.Sprites() != 1 || system.removed != 1 {
		t.Errorf("Expected one sprite left and one removed, got %d and %d", r.Sprites(), system.removed)
	}
	if _, ok := r.sprites[1]; ok {
		t.Error("Sprite 1 should have been removed")
	}
}

func TestEngoRenderer_Close(t *testing.T) {
	system := newFakeSystem()
	r := newTestRenderer(system)

	frame := render.NewFrame(render.DefaultCamera())
	frame.Add(1, physics.NewMovementState(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	_ = r.Draw(context.Background(), frame)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if r.Sprites() != 0 || len(system.added) != 0 {
		t.Errorf("Expected all sprites removed, got %d", r.Sprites())
	}
}

func TestEngoRenderer_ImplementsRenderer(t *testing.T) {
	var _ render.Renderer = newTestRenderer(newFakeSystem())
	var _ spriteSystem = &common.RenderSystem{}
}
