// pkg/render/engo/scene_test.go
package engo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/config"
	"github.com/opd-ai/go-shipsim/pkg/engine"
	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

type fixedInput entity.Input

func (f fixedInput) Input(time.Time) entity.Input { return entity.Input(f) }

type brokenRenderer struct{ draws int }

var errBroken = errors.New("broken")

func (b *brokenRenderer) Draw(context.Context, render.Frame) error {
	b.draws++
	return errBroken
}

func (b *brokenRenderer) Close() error { return nil }

func newTestGame(t *testing.T) *engine.Game {
	t.Helper()
	game, err := engine.NewGameFromConfig(config.DefaultConfig(), logging.Discard())
	if err != nil {
		t.Fatalf("NewGameFromConfig() error: %v", err)
	}
	return game
}

func TestNewSimScene(t *testing.T) {
	game := newTestGame(t)
	scene := NewSimScene(game, "title", logging.Discard())

	if scene == nil {
		t.Fatal("NewSimScene() returned nil")
	}
	if scene.game != game {
		t.Error("Expected game to be set correctly")
	}
	if scene.Type() != "SimScene" {
		t.Errorf("Expected type 'SimScene', got %q", scene.Type())
	}
}

func TestSimScene_Preload(t *testing.T) {
	scene := NewSimScene(newTestGame(t), "title", logging.Discard())
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Preload() panicked: %v", r)
		}
	}()
	scene.Preload()
}

func TestSimSystem_Update(t *testing.T) {
	game := newTestGame(t)
	system := newFakeSystem()
	renderer := newTestRenderer(system)

	sim := NewSimSystem(context.Background(), game, fixedInput(entity.Input{Right: true}), renderer, logging.Discard())
	for i := 0; i < 30; i++ {
		sim.Update(1.0 / 60)
	}

	if sim.Err() != nil {
		t.Fatalf("unexpected error: %v", sim.Err())
	}
	if game.CurrentTick != 30 {
		t.Errorf("Expected 30 ticks, got %d", game.CurrentTick)
	}
	ship, _ := game.Ship(1)
	if ship.Body.Position.X() <= 0 {
		t.Errorf("Expected ship to move right, got %v", ship.Body.Position)
	}
	if renderer.Sprites() != 1 {
		t.Errorf("Expected one sprite, got %d", renderer.Sprites())
	}

	space := &renderer.sprites[ship.ID].SpaceComponent
	want := Place(mustMatrices(t, game, ship.ID), 1280, 720).Center
	if got := space.Center(); !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Errorf("Expected sprite at %v, got %v", want, got)
	}
}

func TestSimSystem_StopsAfterError(t *testing.T) {
	game := newTestGame(t)
	renderer := &brokenRenderer{}

	sim := NewSimSystem(context.Background(), game, fixedInput{}, renderer, logging.Discard())
	sim.Update(0.1)
	sim.Update(0.1)

	if !errors.Is(sim.Err(), errBroken) {
		t.Errorf("Expected errBroken, got %v", sim.Err())
	}
	if renderer.draws != 1 {
		t.Errorf("Expected stepping to stop after the failure, got %d draws", renderer.draws)
	}
}

func mustMatrices(t *testing.T, game *engine.Game, id entity.ID) render.Matrices {
	t.Helper()
	m, ok := game.Frame().Matrices(id)
	if !ok {
		t.Fatalf("no matrices for %d", id)
	}
	return m
}

func TestSimSystem_PointerTarget(t *testing.T) {
	game := newTestGame(t)
	sim := NewSimSystem(context.Background(), game,
		fixedInput(entity.Input{}.WithTarget(mgl32.Vec3{1, 0, 0})),
		newTestRenderer(newFakeSystem()), logging.Discard())

	for i := 0; i < 60; i++ {
		sim.Update(1.0 / 60)
	}

	ship, _ := game.Ship(1)
	if ship.Body.Heading <= 0 {
		t.Errorf("Expected counter-clockwise turn toward +X, got heading %f", ship.Body.Heading)
	}
}

type plainUpdater struct{}

func (plainUpdater) Update(float32) {}

func TestSimScene_SetupRequiresWorld(t *testing.T) {
	game := newTestGame(t)
	scene := NewSimScene(game, "title", logging.Discard())

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Setup() panicked on a non-world updater: %v", r)
		}
	}()
	scene.Setup(plainUpdater{})

	if game.IsRunning() {
		t.Error("Expected game not started when setup fails")
	}
	if scene.sim != nil {
		t.Error("Expected no simulation system when setup fails")
	}
}

func TestExitOnDone(t *testing.T) {
	t.Run("cancel_calls_exit", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		exited := make(chan struct{})
		stop := exitOnDone(ctx, func() { close(exited) })
		defer stop()

		cancel()
		select {
		case <-exited:
		case <-time.After(time.Second):
			t.Fatal("exit was not called after cancel")
		}
	})

	t.Run("stop_releases_without_exit", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		exited := make(chan struct{}, 1)
		stop := exitOnDone(ctx, func() { exited <- struct{}{} })

		stop()
		stop()
		cancel()

		select {
		case <-exited:
			t.Error("exit called after stop")
		case <-time.After(50 * time.Millisecond):
		}
	})
}
