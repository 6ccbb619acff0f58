package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-shipsim/pkg/engine"
	"github.com/opd-ai/go-shipsim/pkg/health"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/render"
	engorender "github.com/opd-ai/go-shipsim/pkg/render/engo"
)

var (
	flagRenderer   string
	flagLogFile    string
	flagHealthAddr string
	flagMaxHeapMB  int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation interactively",
	Long: `Open the simulation in a window (engo) or in the terminal (tcell).

Controls:
  W/A/S/D or arrows  - Accelerate up/left/down/right
  Mouse              - Ships turn toward the pointer
  Esc/Q              - Quit`,
	RunE: runInteractive,
}

func init() {
	runCmd.Flags().StringVar(&flagRenderer, "renderer", "", "Front-end: engo or terminal (default from config)")
	runCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	runCmd.Flags().StringVar(&flagHealthAddr, "health-addr", "", "Serve /health and /ready on this address (e.g. :8080)")
	runCmd.Flags().Int64Var(&flagMaxHeapMB, "max-heap-mb", 500, "Heap limit reported by /ready")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger()
	cfg, err := loadConfig(ctx, logger, flagConfig)
	if err != nil {
		return err
	}

	renderer := cfg.Window.Renderer
	if flagRenderer != "" {
		renderer = flagRenderer
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, os.Getenv("SHIPSIM_LOG_FORMAT"), slog.LevelDebug)
	} else if renderer == "terminal" {
		// Anything written to stderr would tear the terminal UI.
		logger = logging.Discard()
	}

	game, err := engine.NewGameFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	if flagHealthAddr != "" {
		checker := newHealthChecker(game, cfg.Loop.FrameInterval(), flagMaxHeapMB)
		go func() {
			if err := checker.Serve(ctx, flagHealthAddr, logger); err != nil {
				logger.Error(ctx, "Health check server failed", err)
			}
		}()
	}

	switch renderer {
	case "engo":
		engorender.Run(ctx, game, cfg, logger)
		return nil
	case "terminal":
		return runTerminal(ctx, game, cfg.Loop.FrameInterval(), logger)
	default:
		return fmt.Errorf("unknown renderer %q (want engo or terminal)", renderer)
	}
}

func runTerminal(ctx context.Context, game *engine.Game, interval time.Duration, logger *logging.Logger) error {
	screen, err := render.NewTerminalScreen()
	if err != nil {
		return err
	}

	tr := render.NewTerminalRenderer(screen, game.Camera.AspectRatio(), logger)
	defer tr.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-tr.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	tr.Start(ctx)
	return game.Run(ctx, tr, tr, interval)
}

// newHealthChecker reports the loop unready once it misses ten frames in a
// row or the heap passes maxHeapMB.
func newHealthChecker(game *engine.Game, interval time.Duration, maxHeapMB int64) *health.HealthChecker {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewFrameLoopHealthCheck(game.IsRunning, game.LastUpdate, 10*interval))
	checker.AddCheck(health.NewMemoryHealthCheck(maxHeapMB, nil))
	return checker
}
