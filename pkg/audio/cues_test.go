package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-tether/pkg/event"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
		want Cue
		ok   bool
	}{
		{"short release", event.NewGestureEvent(nil, false, 50, 0, 0), CueRelease, true},
		{"long release", event.NewGestureEvent(nil, true, 500, 0, 0), CueLongRelease, true},
		{"grounded", event.NewPlayerEvent(event.PlayerGrounded, nil, 66, false, 10, 344), CueGrounded, true},
		{"tether on", event.NewPlayerEvent(event.TetherToggled, nil, 1, true, 0, 0), CueTether, true},
		{"tether off", event.NewPlayerEvent(event.TetherToggled, nil, 1, false, 0, 0), CueUntether, true},
		{"scene", event.NewSceneEvent(nil, "rope", "player"), CueScene, true},
		{"lifecycle", event.NewLifecycleEvent(event.SandboxStarted, nil, "rope", 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CueFor(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStreamerLength(t *testing.T) {
	c := NewWithPlayer(SampleRate, nil, nil)

	s, err := c.Streamer(CueGrounded)
	require.NoError(t, err)
	assert.Equal(t, SampleRate.N(90*time.Millisecond), drain(s))

	_, err = c.Streamer(Cue(99))
	assert.Error(t, err)
}

func TestAttachPlaysOnEvents(t *testing.T) {
	var played []beep.Streamer
	c := NewWithPlayer(SampleRate, func(s beep.Streamer) { played = append(played, s) }, nil)
	bus := event.NewEventBus()
	c.Attach(bus)

	bus.Publish(event.NewGestureEvent(nil, false, 10, 0, 0))
	bus.Publish(event.NewSceneEvent(nil, "multispring", "rope"))
	bus.Publish(event.NewLifecycleEvent(event.SandboxStopped, nil, "rope", 3))
	require.Len(t, played, 2)

	c.Detach()
	bus.Publish(event.NewGestureEvent(nil, true, 400, 0, 0))
	assert.Len(t, played, 2)
}

func TestSilentWithoutPlayer(t *testing.T) {
	c := New(nil)
	bus := event.NewEventBus()
	c.Attach(bus)
	defer c.Detach()

	assert.NotPanics(t, func() {
		bus.Publish(event.NewPlayerEvent(event.PlayerGrounded, nil, 1, false, 0, 0))
		c.Play(CueTether)
	})
}

func TestCloseSilences(t *testing.T) {
	plays := 0
	c := NewWithPlayer(SampleRate, func(beep.Streamer) { plays++ }, nil)
	bus := event.NewEventBus()
	c.Attach(bus)

	c.Play(CueScene)
	c.Close()
	c.Play(CueScene)
	bus.Publish(event.NewSceneEvent(nil, "rope", "player"))

	assert.Equal(t, 1, plays)
}
