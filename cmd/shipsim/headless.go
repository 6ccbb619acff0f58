package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-shipsim/pkg/engine"
	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/event"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/render"
)

var (
	flagSteps  int
	flagDT     float32
	flagTarget string
	flagInput  string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Step the simulation without a display",
	Long: `Run a fixed number of steps with constant input and print the final
state of every ship. Frames go to a renderer that only logs them.

Examples:
  shipsim headless --steps 60 --input up,right
  shipsim headless --steps 200 --target 1,0`,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagSteps, "steps", 60, "Number of steps to run")
	headlessCmd.Flags().Float32Var(&flagDT, "dt", 0, "Seconds per step (default from config)")
	headlessCmd.Flags().StringVar(&flagTarget, "target", "", "World point x,y every ship turns toward")
	headlessCmd.Flags().StringVar(&flagInput, "input", "", "Held directions: any of up,down,left,right")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx := logging.WithCorrelationID(cmd.Context(), logging.GenerateCorrelationID())
	logger := logging.NewLogger()

	cfg, err := loadConfig(ctx, logger, flagConfig)
	if err != nil {
		return err
	}

	in, err := parseInput(flagInput)
	if err != nil {
		return err
	}
	if flagTarget != "" {
		target, err := parseTarget(flagTarget)
		if err != nil {
			return err
		}
		in = in.WithTarget(target)
	}

	dt := cfg.Loop.FixedDeltaTime
	if cmd.Flags().Changed("dt") {
		dt = flagDT
	}
	if dt < 0 || flagSteps < 0 {
		return fmt.Errorf("steps and dt must not be negative")
	}

	game, err := engine.NewGameFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	undefined := 0
	sub := game.EventBus.Subscribe(event.DirectionUndefined, func(e event.Event) {
		undefined++
	})
	defer sub.Cancel()

	if err := game.Simulate(ctx, flagSteps, dt, in, render.NewNullRenderer(logger)); err != nil {
		return err
	}
	if undefined > 0 {
		logger.Warn(ctx, "Target coincided with a ship", "frames", undefined)
	}

	return printShips(cmd.OutOrStdout(), game)
}

func printShips(w io.Writer, game *engine.Game) error {
	for _, ship := range game.ShipList() {
		b := ship.Body
		_, err := fmt.Fprintf(w, "ship %d position (%.4f, %.4f) velocity (%.4f, %.4f) speed %.4f heading %.4f\n",
			ship.ID, b.Position.X(), b.Position.Y(), b.Velocity.X(), b.Velocity.Y(), b.Speed(), b.Heading)
		if err != nil {
			return err
		}
	}
	return nil
}

// parseTarget reads "x,y" or "x,y,z"
func parseTarget(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return mgl32.Vec3{}, fmt.Errorf("invalid target %q: want x,y", s)
	}

	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("invalid target %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseInput reads a comma separated list of held directions
func parseInput(s string) (entity.Input, error) {
	var in entity.Input
	if strings.TrimSpace(s) == "" {
		return in, nil
	}
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "up":
			in.Up = true
		case "down":
			in.Down = true
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		default:
			return in, fmt.Errorf("invalid direction %q: want up, down, left or right", part)
		}
	}
	return in, nil
}

