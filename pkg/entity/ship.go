// pkg/entity/ship.go
package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/physics"
)

// ShipStats contains the movement limits of a ship
type ShipStats struct {
	MaxSpeed float32
	TurnRate float32
}

// DefaultShipStats returns the stock limits
func DefaultShipStats() ShipStats {
	return ShipStats{
		MaxSpeed: physics.DefaultMaxSpeed,
		TurnRate: physics.DefaultTurnRate,
	}
}

// Ship is a controllable object that accelerates from directional input and
// turns to face a target point.
type Ship struct {
	BaseEntity
	Stats     ShipStats
	AngleMode physics.AngleMode
}

// NewShip creates a ship at rest at position
func NewShip(id ID, position, scale mgl32.Vec3, stats ShipStats, mode physics.AngleMode) *Ship {
	body := physics.NewMovementState(position, scale)
	body.MaxSpeed = stats.MaxSpeed
	body.TurnRate = stats.TurnRate

	return &Ship{
		BaseEntity: BaseEntity{
			ID:     id,
			Body:   *body,
			Active: true,
		},
		Stats:     stats,
		AngleMode: mode,
	}
}

// Update handles the ship's state update for a single frame. Heading is
// updated before movement. A target on top of the ship is reported as
// physics.ErrUndefinedDirection, but movement is still integrated.
func (s *Ship) Update(deltaTime float32, in Input) error {
	var headingErr error
	if in.HasTarget {
		if _, err := physics.UpdateHeading(&s.Body, in.Target, deltaTime, s.AngleMode); err != nil {
			headingErr = fmt.Errorf("ship %d: %w", s.ID, err)
		}
	}

	physics.UpdateMovement(&s.Body, deltaTime, in.Direction())
	return headingErr
}
