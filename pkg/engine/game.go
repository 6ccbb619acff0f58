// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/config"
	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/event"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/physics"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

// Game owns the ships and the fixed camera. Ships never interact; each one is
// updated from its own input.
type Game struct {
	Config      *config.SimConfig
	Ships       map[entity.ID]*entity.Ship
	Camera      *render.Camera
	EventBus    *event.Bus
	EntityLock  sync.RWMutex
	CurrentTick uint64
	StartTime   time.Time

	running    atomic.Bool
	lastUpdate atomic.Int64 // unix nanoseconds
	angleMode  physics.AngleMode
	nextID     entity.ID
	logger     *logging.Logger
}

// InputSource supplies the control sample for the current frame
type InputSource interface {
	Input(now time.Time) entity.Input
}

// NewGame creates a game with no ships. A nil bus or logger is replaced with
// a fresh one.
func NewGame(cfg *config.SimConfig, camera *render.Camera, bus *event.Bus, logger *logging.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if camera == nil {
		return nil, errors.New("game requires a camera")
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	mode, err := physics.ParseAngleMode(cfg.Ship.AngleMode)
	if err != nil {
		return nil, fmt.Errorf("invalid ship config: %w", err)
	}

	return &Game{
		Config:    cfg,
		Ships:     make(map[entity.ID]*entity.Ship),
		Camera:    camera,
		EventBus:  bus,
		angleMode: mode,
		nextID:    1,
		logger:    logger,
	}, nil
}

// NewGameFromConfig builds the camera from cfg and spawns cfg.Ship.Count
// ships spaced along +X from cfg.Ship.Position.
func NewGameFromConfig(cfg *config.SimConfig, logger *logging.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := cfg.Camera
	camera, err := render.NewCamera(c.Eye, c.LookAt, c.Up, c.AspectRatio, c.ClipNear, c.ClipFar)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	game, err := NewGame(cfg, camera, nil, logger)
	if err != nil {
		return nil, err
	}

	for i := 0; i < cfg.Ship.Count; i++ {
		offset := mgl32.Vec3{float32(i) * cfg.Ship.Spacing, 0, 0}
		game.AddShip(cfg.Ship.Position.Add(offset))
	}
	return game, nil
}

// AddShip creates a ship at position using the configured limits and returns it
func (g *Game) AddShip(position mgl32.Vec3) *entity.Ship {
	stats := entity.ShipStats{
		MaxSpeed: g.Config.Ship.MaxSpeed,
		TurnRate: g.Config.Ship.TurnRate,
	}

	g.EntityLock.Lock()
	id := g.nextID
	g.nextID++
	ship := entity.NewShip(id, position, g.Config.Ship.Scale, stats, g.angleMode)
	g.Ships[id] = ship
	g.EntityLock.Unlock()

	g.EventBus.Publish(event.NewObjectEvent(event.ObjectAdded, g, uint64(id),
		ship.Body.Position, ship.Body.Velocity, ship.Body.Heading))
	g.logger.Debug(context.Background(), "Ship added", "ship_id", uint64(id), "position", position)
	return ship
}

// Ship returns the ship with the given ID
func (g *Game) Ship(id entity.ID) (*entity.Ship, bool) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	ship, ok := g.Ships[id]
	return ship, ok
}

// ShipList returns all ships ordered by ID
func (g *Game) ShipList() []*entity.Ship {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.sortedShips()
}

func (g *Game) sortedShips() []*entity.Ship {
	ships := make([]*entity.Ship, 0, len(g.Ships))
	for _, ship := range g.Ships {
		ships = append(ships, ship)
	}
	sort.Slice(ships, func(i, j int) bool { return ships[i].ID < ships[j].ID })
	return ships
}

// Start marks the game as running
func (g *Game) Start() {
	g.StartTime = time.Now()
	g.lastUpdate.Store(g.StartTime.UnixNano())
	g.running.Store(true)
	g.EventBus.Publish(event.NewLoopEvent(event.LoopStarted, g, g.CurrentTick, nil))
}

// Stop halts the game, recording why it stopped
func (g *Game) Stop(err error) {
	g.running.Store(false)
	g.EventBus.Publish(event.NewLoopEvent(event.LoopStopped, g, g.CurrentTick, err))
}

// IsRunning reports whether a frame loop is driving the game. Safe to call
// from any goroutine.
func (g *Game) IsRunning() bool {
	return g.running.Load()
}

// LastUpdate returns when the last frame finished, or the zero time if the
// game never started.
func (g *Game) LastUpdate() time.Time {
	ns := g.lastUpdate.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Update advances every ship by deltaTime. Ships missing from inputs coast.
// A target on top of a ship is reported on the event bus and does not stop
// the frame.
func (g *Game) Update(deltaTime float32, inputs map[entity.ID]entity.Input) error {
	if deltaTime < 0 {
		return fmt.Errorf("negative delta time %f", deltaTime)
	}

	g.EntityLock.Lock()
	ships := g.sortedShips()
	var published []event.Event
	for _, ship := range ships {
		if !ship.Active {
			continue
		}
		in := inputs[ship.ID]
		if err := ship.Update(deltaTime, in); err != nil {
			if !errors.Is(err, physics.ErrUndefinedDirection) {
				g.EntityLock.Unlock()
				return err
			}
			published = append(published, event.NewDirectionEvent(g, uint64(ship.ID), in.Target, err))
		}
		body := ship.Body
		published = append(published, event.NewObjectEvent(event.ObjectUpdated, g, uint64(ship.ID),
			body.Position, body.Velocity, body.Heading))
	}
	g.CurrentTick++
	g.EntityLock.Unlock()
	g.lastUpdate.Store(time.Now().UnixNano())

	// Handlers run outside the lock so they may query the game.
	for _, e := range published {
		if de, ok := e.(*event.DirectionEvent); ok {
			g.logger.Debug(context.Background(), "Target coincides with ship", "ship_id", de.ObjectID, "target", de.Target)
		}
		g.EventBus.Publish(e)
	}
	return nil
}

// Frame captures the matrices for every active ship
func (g *Game) Frame() render.Frame {
	frame := render.NewFrame(g.Camera)

	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	for id, ship := range g.Ships {
		if ship.Active {
			frame.Add(id, &ship.Body)
		}
	}
	return frame
}

// Broadcast returns inputs giving in to every ship
func (g *Game) Broadcast(in entity.Input) map[entity.ID]entity.Input {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	inputs := make(map[entity.ID]entity.Input, len(g.Ships))
	for id := range g.Ships {
		inputs[id] = in
	}
	return inputs
}

// Run drives the game in real time: each iteration samples source, updates
// every ship with that input and draws the frame. It returns when ctx is
// cancelled or a step fails.
func (g *Game) Run(ctx context.Context, renderer render.Renderer, source InputSource, interval time.Duration) error {
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())
	g.Start()
	g.logger.Info(ctx, "Frame loop started", "ships", len(g.ShipList()), "interval", interval)

	clock := &FrameClock{}
	_, err := Loop(ctx, clock, func(deltaTime float32) error {
		in := source.Input(time.Now())
		if err := g.Update(deltaTime, g.Broadcast(in)); err != nil {
			return err
		}
		return renderer.Draw(ctx, g.Frame())
	}, interval)

	g.Stop(err)
	if err != nil {
		g.logger.Error(ctx, "Frame loop failed", err, "ticks", g.CurrentTick)
		return logging.WrapError(err, "frame loop failed after %d ticks", g.CurrentTick)
	}
	g.logger.Info(ctx, "Frame loop stopped", "ticks", g.CurrentTick)
	return nil
}

// Simulate runs steps fixed-size frames as fast as possible, giving in to
// every ship. renderer may be nil.
func (g *Game) Simulate(ctx context.Context, steps int, deltaTime float32, in entity.Input, renderer render.Renderer) error {
	g.Start()
	var err error
	for i := 0; i < steps; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = g.Update(deltaTime, g.Broadcast(in)); err != nil {
			break
		}
		if renderer != nil {
			if err = renderer.Draw(ctx, g.Frame()); err != nil {
				break
			}
		}
	}
	g.Stop(err)
	return err
}
