package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayer(&RecordingRenderer{}, DefaultPlayerParams())
	require.NoError(t, err)
	return p
}

// land steps an idle player until it is grounded and returns the step count
func land(t *testing.T, p *Player) int {
	t.Helper()
	for step := 1; step <= 1000; step++ {
		p.Update(input.Snapshot{})
		if p.State() == Grounded {
			return step
		}
	}
	t.Fatal("player never landed")
	return 0
}

func TestNewPlayer_InitialState(t *testing.T) {
	p := newTestPlayer(t)

	assert.Equal(t, Airborne, p.State())
	assert.Equal(t, Untethered, p.Tether())
	assert.Equal(t, physics.Vector2D{X: 10, Y: 0}, p.Position)
	assert.Equal(t, physics.Vector2D{}, p.Velocity)
}

func TestPlayer_AirborneAddsGravityEachStep(t *testing.T) {
	p := newTestPlayer(t)

	for i := 0; i < 20; i++ {
		before := p.Velocity.Y
		p.Update(input.Snapshot{})
		require.Equal(t, Airborne, p.State())
		assert.Equal(t, before+10*physics.DeltaTime, p.Velocity.Y, "step %d", i)
	}
}

func TestPlayer_GroundsOnceOnTheFloor(t *testing.T) {
	p := newTestPlayer(t)

	steps := land(t, p)

	assert.Equal(t, 66, steps)
	assert.Equal(t, float64(Height-16), p.Position.Y)
	assert.Equal(t, 0.0, p.Velocity.Y)

	for i := 0; i < 100; i++ {
		p.Update(input.Snapshot{})
	}
	assert.Equal(t, Grounded, p.State())
	assert.Equal(t, float64(Height-16), p.Position.Y)
}

func TestPlayer_AirborneIgnoresHeld(t *testing.T) {
	p := newTestPlayer(t)

	p.Update(input.Snapshot{Gesture: input.Held, PointerX: 600, Timestamp: 5000})

	assert.Equal(t, 0.0, p.Velocity.X)
}

func TestPlayer_GroundedRunsTowardPointer(t *testing.T) {
	tests := []struct {
		name     string
		pointerX int
		hold     int64
		wantVX   float64
	}{
		{"right at press", 600, 0, 2.0},
		{"left at press", 0, 0, -2.0},
		{"right after one second", 600, 1000, 4.0 / (1.0 + 0.1353352832366127)},
		{"pointer on player runs left", 10, 0, -2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t)
			land(t, p)
			x := p.Position.X

			p.Update(input.Snapshot{
				Gesture:        input.Held,
				PressTimestamp: 1000,
				Timestamp:      1000 + tt.hold,
				PointerX:       tt.pointerX,
			})

			assert.InDelta(t, tt.wantVX, p.Velocity.X, 1e-9)
			assert.InDelta(t, x+tt.wantVX, p.Position.X, 1e-9)
		})
	}
}

func TestPlayer_SpeedKeepsAfterRelease(t *testing.T) {
	p := newTestPlayer(t)
	land(t, p)

	p.Update(input.Snapshot{Gesture: input.Held, PointerX: 600})
	p.Update(input.Snapshot{Gesture: input.LongReleased, PointerX: 600})

	assert.InDelta(t, 2.0, p.Velocity.X, 1e-9)
}

func TestPlayer_ShortReleaseTogglesTether(t *testing.T) {
	p := newTestPlayer(t)

	p.Update(input.Snapshot{Gesture: input.ShortReleased})
	assert.Equal(t, Tethered, p.Tether())

	p.Update(input.Snapshot{Gesture: input.LongReleased})
	assert.Equal(t, Tethered, p.Tether(), "long releases do not toggle")

	p.Update(input.Snapshot{Gesture: input.ShortReleased})
	assert.Equal(t, Untethered, p.Tether())
}

func TestPlayer_DrawBlitsAtPosition(t *testing.T) {
	r := &RecordingRenderer{}
	p, err := NewPlayer(r, DefaultPlayerParams())
	require.NoError(t, err)

	p.Draw(r)

	require.Len(t, r.Blits, 1)
	assert.Equal(t, BlitCall{Texture: r.Textures[0], X: 10, Y: 0}, r.Blits[0])
	assert.Empty(t, r.Lines)
}

func TestPlayerState_String(t *testing.T) {
	assert.Equal(t, "airborne", Airborne.String())
	assert.Equal(t, "grounded", Grounded.String())
	assert.Equal(t, "tethered", Tethered.String())
	assert.Equal(t, "untethered", Untethered.String())
}
