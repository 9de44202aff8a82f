package physics

import (
	"math"
	"testing"
)

func TestKinematicState_Integrate(t *testing.T) {
	tests := []struct {
		name     string
		state    KinematicState
		expected Vector2D
	}{
		{
			name:     "at_rest",
			state:    KinematicState{Position: Vector2D{X: 10, Y: 0}},
			expected: Vector2D{X: 10, Y: 0},
		},
		{
			name:     "moving_right",
			state:    KinematicState{Position: Vector2D{X: 10, Y: 5}, Velocity: Vector2D{X: 4, Y: 0}},
			expected: Vector2D{X: 14, Y: 5},
		},
		{
			name:     "falling_left",
			state:    KinematicState{Position: Vector2D{X: 0, Y: 0}, Velocity: Vector2D{X: -1.5, Y: 2}},
			expected: Vector2D{X: -1.5, Y: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state
			state.Integrate()
			if math.Abs(state.Position.X-tt.expected.X) > 1e-9 || math.Abs(state.Position.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("Integrate() position = %v, expected %v", state.Position, tt.expected)
			}
		})
	}
}

func TestKinematicState_Accelerate(t *testing.T) {
	state := KinematicState{}
	state.Accelerate(DefaultGravity, DeltaTime)

	if math.Abs(state.Velocity.Y-10*DeltaTime) > 1e-12 {
		t.Errorf("Velocity.Y = %v, expected %v", state.Velocity.Y, 10*DeltaTime)
	}
	if state.Velocity.X != 0 {
		t.Errorf("Velocity.X = %v, expected 0", state.Velocity.X)
	}
}
