// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SimConfig contains configuration for a simulation run
type SimConfig struct {
	Ship   ShipConfig   `json:"ship" yaml:"ship"`
	Camera CameraConfig `json:"camera" yaml:"camera"`
	Loop   LoopConfig   `json:"loop" yaml:"loop"`
	Window WindowConfig `json:"window" yaml:"window"`
}

// ShipConfig contains the initial placement and limits of the ships
type ShipConfig struct {
	Count     int        `json:"count" yaml:"count"`
	Position  mgl32.Vec3 `json:"position" yaml:"position"`
	Spacing   float32    `json:"spacing" yaml:"spacing"`
	Scale     mgl32.Vec3 `json:"scale" yaml:"scale"`
	MaxSpeed  float32    `json:"maxSpeed" yaml:"maxSpeed"`
	TurnRate  float32    `json:"turnRate" yaml:"turnRate"`
	AngleMode string     `json:"angleMode" yaml:"angleMode"`
}

// CameraConfig contains the fixed camera setup
type CameraConfig struct {
	Eye         mgl32.Vec3 `json:"eye" yaml:"eye"`
	LookAt      mgl32.Vec3 `json:"lookAt" yaml:"lookAt"`
	Up          mgl32.Vec3 `json:"up" yaml:"up"`
	AspectRatio float32    `json:"aspectRatio" yaml:"aspectRatio"`
	ClipNear    float32    `json:"clipNear" yaml:"clipNear"`
	ClipFar     float32    `json:"clipFar" yaml:"clipFar"`
}

// LoopConfig contains frame pacing
type LoopConfig struct {
	TargetFPS      int     `json:"targetFPS" yaml:"targetFPS"`
	FixedDeltaTime float32 `json:"fixedDeltaTime" yaml:"fixedDeltaTime"`
}

// WindowConfig contains front-end settings
type WindowConfig struct {
	Title      string `json:"title" yaml:"title"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	Renderer   string `json:"renderer" yaml:"renderer"`
}

// FrameInterval returns how long the loop sleeps after each frame
func (l LoopConfig) FrameInterval() time.Duration {
	if l.TargetFPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(l.TargetFPS)
}

// isYAML reports whether path should be parsed as YAML
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format from the
// extension the same way LoadConfig does.
func SaveConfig(config *SimConfig, path string) error {
	if config == nil {
		return errors.New("failed to marshal config: nil config")
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		Ship: ShipConfig{
			Count:     1,
			Position:  mgl32.Vec3{0, 0, 0},
			Spacing:   0.5,
			Scale:     mgl32.Vec3{0.1, 0.1, 1},
			MaxSpeed:  0.2,
			TurnRate:  3.0,
			AngleMode: "atan2",
		},
		Camera: CameraConfig{
			Eye:         mgl32.Vec3{0, 0, 1},
			LookAt:      mgl32.Vec3{0, 0, 0},
			Up:          mgl32.Vec3{0, 1, 0},
			AspectRatio: 16.0 / 9.0,
			ClipNear:    0.1,
			ClipFar:     100,
		},
		Loop: LoopConfig{
			TargetFPS:      60,
			FixedDeltaTime: 1.0 / 60.0,
		},
		Window: WindowConfig{
			Title:    "Go Shipsim",
			Width:    1280,
			Height:   720,
			Renderer: "engo",
		},
	}
}

// Validate checks the configuration for values the simulation cannot run with
func (c *SimConfig) Validate() error {
	switch {
	case c.Ship.Count < 1:
		return fmt.Errorf("ship.count must be at least 1, got %d", c.Ship.Count)
	case c.Ship.MaxSpeed < 0:
		return fmt.Errorf("ship.maxSpeed cannot be negative: %f", c.Ship.MaxSpeed)
	case c.Ship.TurnRate < 0:
		return fmt.Errorf("ship.turnRate cannot be negative: %f", c.Ship.TurnRate)
	case c.Ship.AngleMode != "" && c.Ship.AngleMode != "atan2" && c.Ship.AngleMode != "rotor":
		return fmt.Errorf("ship.angleMode must be 'atan2' or 'rotor', got %q", c.Ship.AngleMode)
	case c.Camera.LookAt == c.Camera.Eye:
		return fmt.Errorf("camera.lookAt must differ from camera.eye %v", c.Camera.Eye)
	case !(c.Camera.ClipNear < c.Camera.ClipFar):
		return fmt.Errorf("camera.clipNear %f must be less than camera.clipFar %f", c.Camera.ClipNear, c.Camera.ClipFar)
	case !(c.Camera.AspectRatio > 0):
		return fmt.Errorf("camera.aspectRatio must be positive, got %f", c.Camera.AspectRatio)
	case c.Loop.TargetFPS < 0:
		return fmt.Errorf("loop.targetFPS cannot be negative: %d", c.Loop.TargetFPS)
	case c.Loop.FixedDeltaTime < 0:
		return fmt.Errorf("loop.fixedDeltaTime cannot be negative: %f", c.Loop.FixedDeltaTime)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
