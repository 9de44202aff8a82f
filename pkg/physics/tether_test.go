package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTether_StartsAtRestLength(t *testing.T) {
	tether := NewTether(Vector2D{X: 100, Y: 100}, Vector2D{X: 200, Y: 200}, 100)

	assert.InDelta(t, math.Sqrt(2)*100, tether.RestLength, 1e-9)
	assert.InDelta(t, 0, tether.Stretch(), 1e-12)
	assert.Equal(t, Vector2D{}, tether.Velocity)
}

func TestTether_FirstStepOnlyFeelsGravity(t *testing.T) {
	tether := NewTether(Vector2D{X: 100, Y: 100}, Vector2D{X: 200, Y: 200}, 100)

	tether.Step(DeltaTime)

	assert.InDelta(t, 0, tether.Acceleration.X, 1e-9, "spring term should vanish at rest length")
	assert.InDelta(t, DefaultGravity.Y, tether.Acceleration.Y, 1e-9)
	assert.InDelta(t, DefaultGravity.Y*DeltaTime, tether.Velocity.Y, 1e-12)
	assert.InDelta(t, 200+DefaultGravity.Y*DeltaTime, tether.Position.Y, 1e-9)
}

func TestTether_StretchedSpringPullsTowardAnchor(t *testing.T) {
	tether := NewTether(Vector2D{X: 0, Y: 0}, Vector2D{X: 10, Y: 0}, 50)
	tether.Gravity = Vector2D{}
	tether.Position = Vector2D{X: 12, Y: 0}

	tether.Step(DeltaTime)

	assert.InDelta(t, -100, tether.Acceleration.X, 1e-9)
	assert.Less(t, tether.Velocity.X, 0.0)
}

func TestTether_StaysBoundedWithDefaults(t *testing.T) {
	tether := NewTether(Vector2D{X: 100, Y: 100}, Vector2D{X: 200, Y: 200}, 100)

	for step := 0; step < 5000; step++ {
		tether.Step(DeltaTime)
		require.True(t, tether.Position.IsFinite(), "position diverged at step %d", step)
		require.InDelta(t, 0, tether.Stretch(), 1.0, "stretch out of bounds at step %d", step)
	}

	// The mass swings around the point below the anchor.
	assert.Greater(t, tether.Position.Y, tether.Anchor.Y)
}

func TestTether_ZeroDisplacementIsNotFinite(t *testing.T) {
	anchor := Vector2D{X: 5, Y: 5}
	tether := NewTether(anchor, Vector2D{X: 5, Y: 15}, 100)
	tether.Position = anchor

	tether.Step(DeltaTime)

	assert.False(t, tether.Position.IsFinite())
}

func BenchmarkTether_Step(b *testing.B) {
	tether := NewTether(Vector2D{X: 100, Y: 100}, Vector2D{X: 200, Y: 200}, 100)
	for i := 0; i < b.N; i++ {
		tether.Step(DeltaTime)
	}
}
