// shipsim flies one or more ships around a fixed orthographic view.
//
// Usage:
//
//	shipsim run                      - Open a window (engo) or use the terminal (tcell)
//	shipsim headless                 - Step the simulation without a display
//	shipsim config default           - Write the default configuration
//	shipsim config validate <path>   - Check a configuration file
//	shipsim run --health-addr :8080  - Also serve /health and /ready
//
// Global flags:
//
//	--config <path>   - JSON or YAML configuration (by extension)
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-shipsim/pkg/config"
	"github.com/opd-ai/go-shipsim/pkg/logging"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shipsim",
	Short: "Ship movement and orientation simulator",
	Long: `shipsim integrates ship movement from directional input, turns each ship
toward the pointer at a fixed rate, and draws the result through a fixed
orthographic camera.

Examples:
  shipsim run
  shipsim run --renderer terminal
  shipsim headless --steps 120 --target 1,0
  shipsim config default --out shipsim.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file (JSON or YAML)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads path when it exists, falls back to defaults otherwise, and
// applies SHIPSIM_* overrides on top.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.SimConfig, error) {
	cfg := config.DefaultConfig()

	if path != "" {
		loaded, err := config.LoadConfig(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info(ctx, "Configuration file not found, using default configuration", "path", path)
		case err != nil:
			return nil, err
		default:
			cfg = loaded
			logger.Debug(ctx, "Configuration loaded", "path", path)
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
