package entity

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/physics"
)

func TestNewShip(t *testing.T) {
	position := mgl32.Vec3{0.5, -0.5, 0}
	scale := mgl32.Vec3{0.1, 0.1, 1}
	stats := ShipStats{MaxSpeed: 0.4, TurnRate: 2}

	ship := NewShip(7, position, scale, stats, physics.AngleModeRotor)

	if ship.ID != 7 {
		t.Errorf("Expected ID 7, got %d", ship.ID)
	}
	if !ship.Active {
		t.Error("Expected new ship to be active")
	}
	if ship.Body.Position != position || ship.Body.Scale != scale {
		t.Errorf("Expected position %v scale %v, got %v %v", position, scale, ship.Body.Position, ship.Body.Scale)
	}
	if ship.Body.MaxSpeed != 0.4 || ship.Body.TurnRate != 2 {
		t.Errorf("Expected stats copied into body, got max speed %f turn rate %f", ship.Body.MaxSpeed, ship.Body.TurnRate)
	}
	if ship.Body.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Expected zero velocity, got %v", ship.Body.Velocity)
	}
	if ship.AngleMode != physics.AngleModeRotor {
		t.Errorf("Expected rotor angle mode, got %q", ship.AngleMode)
	}
}

func TestShip_Update(t *testing.T) {
	t.Run("turns_then_moves", func(t *testing.T) {
		ship := NewShip(1, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, DefaultShipStats(), physics.AngleModeAtan2)
		in := Input{Up: true}.WithTarget(mgl32.Vec3{1, -1, 0})

		if err := ship.Update(0.1, in); err != nil {
			t.Fatalf("Update() error: %v", err)
		}

		if ship.Body.Heading <= 0 {
			t.Errorf("Expected counter-clockwise turn, heading %f", ship.Body.Heading)
		}
		if ship.Body.Position.Y() <= 0 {
			t.Errorf("Expected movement along +Y, got %v", ship.Body.Position)
		}
	})

	t.Run("no_target_keeps_heading", func(t *testing.T) {
		ship := NewShip(1, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, DefaultShipStats(), physics.AngleModeAtan2)
		ship.Body.Heading = 1.25

		if err := ship.Update(0.1, Input{Left: true}); err != nil {
			t.Fatalf("Update() error: %v", err)
		}
		if ship.Body.Heading != 1.25 {
			t.Errorf("Expected heading unchanged, got %f", ship.Body.Heading)
		}
	})

	t.Run("coincident_target_reports_error_and_still_moves", func(t *testing.T) {
		ship := NewShip(3, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, DefaultShipStats(), physics.AngleModeAtan2)
		in := Input{Right: true}.WithTarget(mgl32.Vec3{})

		err := ship.Update(0.1, in)
		if !errors.Is(err, physics.ErrUndefinedDirection) {
			t.Fatalf("Expected ErrUndefinedDirection, got %v", err)
		}
		if ship.Body.Position.X() <= 0 {
			t.Errorf("Expected integration to run despite heading error, got %v", ship.Body.Position)
		}
		if ship.Body.Heading != 0 {
			t.Errorf("Expected heading untouched, got %f", ship.Body.Heading)
		}
	})
}
