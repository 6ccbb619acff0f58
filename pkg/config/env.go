package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// ApplyEnvironmentOverrides applies SHIPSIM_* environment variables on top of
// a loaded configuration and validates the result.
func ApplyEnvironmentOverrides(config *SimConfig) error {
	config.Ship.Count = getEnvAsIntOrDefault("SHIPSIM_SHIP_COUNT", config.Ship.Count)
	config.Ship.MaxSpeed = float32(getEnvAsFloatOrDefault("SHIPSIM_MAX_SPEED", float64(config.Ship.MaxSpeed)))
	config.Ship.TurnRate = float32(getEnvAsFloatOrDefault("SHIPSIM_TURN_RATE", float64(config.Ship.TurnRate)))
	config.Ship.AngleMode = getEnvOrDefault("SHIPSIM_ANGLE_MODE", config.Ship.AngleMode)

	config.Camera.AspectRatio = float32(getEnvAsFloatOrDefault("SHIPSIM_ASPECT_RATIO", float64(config.Camera.AspectRatio)))

	config.Loop.TargetFPS = getEnvAsIntOrDefault("SHIPSIM_TARGET_FPS", config.Loop.TargetFPS)
	if interval := getEnvAsDurationOrDefault("SHIPSIM_FRAME_INTERVAL", 0); interval > 0 {
		fps, err := fpsForInterval(interval)
		if err != nil {
			return fmt.Errorf("SHIPSIM_FRAME_INTERVAL: %w", err)
		}
		config.Loop.TargetFPS = fps
	}

	config.Window.Width = getEnvAsIntOrDefault("SHIPSIM_WINDOW_WIDTH", config.Window.Width)
	config.Window.Height = getEnvAsIntOrDefault("SHIPSIM_WINDOW_HEIGHT", config.Window.Height)
	config.Window.Fullscreen = getEnvAsBoolOrDefault("SHIPSIM_FULLSCREEN", config.Window.Fullscreen)
	config.Window.Renderer = getEnvOrDefault("SHIPSIM_RENDERER", config.Window.Renderer)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after environment overrides: %w", err)
	}
	return nil
}

// fpsForInterval converts a frame interval to the nearest whole frame rate.
// Intervals longer than a second have no rate of at least one frame per
// second and are rejected.
func fpsForInterval(interval time.Duration) (int, error) {
	if interval > time.Second {
		return 0, fmt.Errorf("frame interval %s exceeds 1s", interval)
	}
	return int(math.Round(float64(time.Second) / float64(interval))), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
