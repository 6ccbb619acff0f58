package engine

import (
	"context"
	"time"
)

// DefaultFrameInterval is the pause after each loop iteration
const DefaultFrameInterval = time.Second / 60

// FrameClock measures the time between consecutive frames
type FrameClock struct {
	last    time.Time
	started bool
}

// Tick records now and returns the seconds elapsed since the previous tick.
// The first tick returns 0, as does a clock that moved backwards.
func (c *FrameClock) Tick(now time.Time) float32 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		return 0
	}
	return float32(elapsed.Seconds())
}

// Reset makes the next tick behave like the first
func (c *FrameClock) Reset() {
	c.started = false
	c.last = time.Time{}
}

// StepFunc runs one update-then-render iteration
type StepFunc func(deltaTime float32) error

// Loop calls step once per iteration with the delta time from clock, then
// waits interval. It returns the number of completed iterations when ctx is
// cancelled (with a nil error) or when step fails.
func Loop(ctx context.Context, clock *FrameClock, step StepFunc, interval time.Duration) (uint64, error) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	var frames uint64
	for {
		if ctx.Err() != nil {
			return frames, nil
		}

		if err := step(clock.Tick(time.Now())); err != nil {
			return frames, err
		}
		frames++

		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return frames, nil
		case <-timer.C:
		}
	}
}
