// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-shipsim/pkg/logging"
)

// Renderer consumes one Frame per simulation step. Implementations only read
// the matrices; they never feed anything back into the simulation.
type Renderer interface {
	Draw(ctx context.Context, frame Frame) error
	Close() error
}

// NullRenderer is a Renderer that logs each frame at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Draw implements Renderer.
func (d *NullRenderer) Draw(ctx context.Context, frame Frame) error {
	d.frames++
	for _, id := range frame.IDs() {
		m, _ := frame.Matrices(id)
		d.logger.Debug(ctx, "Draw object",
			"frame", d.frames,
			"object_id", uint64(id),
			"mvp", m.MVP(),
		)
	}
	return nil
}

// Frames returns how many frames have been drawn
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Close implements Renderer.
func (d *NullRenderer) Close() error {
	d.logger.Debug(context.Background(), "Close called", "frames", d.frames)
	return nil
}
