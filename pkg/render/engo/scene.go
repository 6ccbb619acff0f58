// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shipsim/pkg/config"
	"github.com/opd-ai/go-shipsim/pkg/engine"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

// SimScene runs a Game inside an engo window
type SimScene struct {
	game   *engine.Game
	title  string
	logger *logging.Logger

	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	sim      *SimSystem
}

// NewSimScene creates a new scene for game
func NewSimScene(game *engine.Game, title string, logger *logging.Logger) *SimScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &SimScene{
		game:   game,
		title:  title,
		logger: logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimScene) Type() string {
	return "SimScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SimScene) Setup(u engo.Updater) {
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(ctx, "Scene setup requires an ecs world", fmt.Errorf("unexpected updater %T", u))
		return
	}

	SetupInputBindings()
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(ctx, "Failed to load assets", err)
	}

	scene.input = NewInputSystem(scene.game.Camera.AspectRatio())
	world.AddSystem(scene.input)

	scene.renderer = NewEngoRenderer(renderSystem, assets, scene.logger)
	scene.sim = NewSimSystem(ctx, scene.game, scene.input, scene.renderer, scene.logger)
	world.AddSystem(scene.sim)

	scene.hud = NewHUDSystem(scene.title, scene.game.ShipList)
	world.AddSystem(scene.hud)

	scene.game.Start()
	scene.logger.Info(ctx, "Scene ready", "ships", len(scene.game.ShipList()))
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimScene) Exit() {
	if scene.renderer != nil {
		scene.renderer.Close()
	}
	var err error
	if scene.sim != nil {
		err = scene.sim.Err()
	}
	scene.game.Stop(err)
	engo.Exit()
}

// SimSystem advances the game by engo's frame delta and draws the result
type SimSystem struct {
	ctx      context.Context
	game     *engine.Game
	input    engine.InputSource
	renderer render.Renderer
	logger   *logging.Logger
	err      error
}

// NewSimSystem creates the system that drives game each frame
func NewSimSystem(ctx context.Context, game *engine.Game, input engine.InputSource, renderer render.Renderer, logger *logging.Logger) *SimSystem {
	return &SimSystem{
		ctx:      ctx,
		game:     game,
		input:    input,
		renderer: renderer,
		logger:   logger,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimSystem) Remove(basic ecs.BasicEntity) {}

// Update runs one update-then-render step. After the first failure the
// system stops stepping.
func (s *SimSystem) Update(dt float32) {
	if s.err != nil {
		return
	}
	if err := s.step(dt); err != nil {
		s.err = err
		s.logger.Error(s.ctx, "Simulation step failed", err, "tick", s.game.CurrentTick)
	}
}

func (s *SimSystem) step(dt float32) error {
	in := s.input.Input(time.Now())
	if err := s.game.Update(dt, s.game.Broadcast(in)); err != nil {
		return err
	}
	return s.renderer.Draw(s.ctx, s.game.Frame())
}

// Err returns the error that stopped the system, if any
func (s *SimSystem) Err() error {
	return s.err
}

// Run opens the window described by cfg and blocks until it closes or ctx
// is cancelled.
func Run(ctx context.Context, game *engine.Game, cfg *config.SimConfig, logger *logging.Logger) {
	stop := exitOnDone(ctx, func() {
		logger.Info(ctx, "Context cancelled, closing window")
		engo.Exit()
	})
	defer stop()

	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      true,
		FPSLimit:   cfg.Loop.TargetFPS,
	}
	engo.Run(opts, NewSimScene(game, cfg.Window.Title, logger))
}

// exitOnDone calls exit once ctx is done. stop releases the watcher and
// waits for it, so exit is never called after stop returns.
func exitOnDone(ctx context.Context, exit func()) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			exit()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}
