package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestInput_Direction(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected mgl32.Vec3
	}{
		{"none", Input{}, mgl32.Vec3{0, 0, 0}},
		{"up", Input{Up: true}, mgl32.Vec3{0, 1, 0}},
		{"down", Input{Down: true}, mgl32.Vec3{0, -1, 0}},
		{"left", Input{Left: true}, mgl32.Vec3{-1, 0, 0}},
		{"right", Input{Right: true}, mgl32.Vec3{1, 0, 0}},
		{"up_right", Input{Up: true, Right: true}, mgl32.Vec3{1, 1, 0}},
		{"down_left", Input{Down: true, Left: true}, mgl32.Vec3{-1, -1, 0}},
		{"opposing_cancel", Input{Up: true, Down: true, Left: true, Right: true}, mgl32.Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.input.Direction(); result != tt.expected {
				t.Errorf("Direction() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestInput_WithTarget(t *testing.T) {
	base := Input{Up: true}
	aimed := base.WithTarget(mgl32.Vec3{1, 2, 0})

	if base.HasTarget {
		t.Error("WithTarget modified the receiver")
	}
	if !aimed.HasTarget || aimed.Target != (mgl32.Vec3{1, 2, 0}) || !aimed.Up {
		t.Errorf("Unexpected aimed input %+v", aimed)
	}
}

func TestPointerToWorld(t *testing.T) {
	const (
		width  = 1600
		height = 900
		aspect = float32(16.0 / 9.0)
	)

	tests := []struct {
		name     string
		px, py   float32
		expected mgl32.Vec3
	}{
		{"center", 800, 450, mgl32.Vec3{0, 0, 0}},
		{"top_left", 0, 0, mgl32.Vec3{-aspect, 1, 0}},
		{"bottom_right", width, height, mgl32.Vec3{aspect, -1, 0}},
		{"right_middle", width, 450, mgl32.Vec3{aspect, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PointerToWorld(tt.px, tt.py, width, height, aspect)
			if !result.ApproxEqualThreshold(tt.expected, 1e-5) {
				t.Errorf("PointerToWorld(%f, %f) = %v, expected %v", tt.px, tt.py, result, tt.expected)
			}
		})
	}
}
