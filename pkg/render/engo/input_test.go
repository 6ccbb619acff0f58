package engo

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
)

func TestWithPointer(t *testing.T) {
	const aspect = float32(16.0 / 9.0)
	tests := []struct {
		name      string
		x, y      float32
		w, h      float32
		hasTarget bool
		target    mgl32.Vec3
	}{
		{"center", 640, 360, 1280, 720, true, mgl32.Vec3{0, 0, 0}},
		{"top_left", 0, 0, 1280, 720, true, mgl32.Vec3{-aspect, 1, 0}},
		{"bottom_right", 1280, 720, 1280, 720, true, mgl32.Vec3{aspect, -1, 0}},
		{"outside_left", -5, 100, 1280, 720, false, mgl32.Vec3{}},
		{"outside_below", 100, 800, 1280, 720, false, mgl32.Vec3{}},
		{"no_surface", 10, 10, 0, 0, false, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := withPointer(entity.Input{Up: true}, tt.x, tt.y, tt.w, tt.h, aspect)
			if !in.Up {
				t.Error("Expected directional flags preserved")
			}
			if in.HasTarget != tt.hasTarget {
				t.Fatalf("HasTarget = %v, expected %v", in.HasTarget, tt.hasTarget)
			}
			if tt.hasTarget && !in.Target.ApproxEqualThreshold(tt.target, 1e-5) {
				t.Errorf("Expected target %v, got %v", tt.target, in.Target)
			}
		})
	}
}

func TestInputSystem_Snapshot(t *testing.T) {
	is := NewInputSystem(1)

	if in := is.Input(time.Now()); in != (entity.Input{}) {
		t.Errorf("Expected empty input before the first sample, got %+v", in)
	}

	want := entity.Input{Left: true}.WithTarget(mgl32.Vec3{0.5, 0.5, 0})
	is.set(want)
	if got := is.Input(time.Now()); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
