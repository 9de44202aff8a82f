// Package audio plays short tones when the sandbox publishes notable events.
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-tether/pkg/event"
	"github.com/opd-ai/go-tether/pkg/logging"
)

// SampleRate is the rate the speaker is opened at
const SampleRate = beep.SampleRate(44100)

// Cue identifies a sound
type Cue int

const (
	CueRelease Cue = iota
	CueLongRelease
	CueGrounded
	CueTether
	CueUntether
	CueScene
)

type tone struct {
	freq     float64
	duration time.Duration
	volume   float64
}

var tones = map[Cue]tone{
	CueRelease:     {freq: 660, duration: 40 * time.Millisecond, volume: 0.3},
	CueLongRelease: {freq: 440, duration: 80 * time.Millisecond, volume: 0.3},
	CueGrounded:    {freq: 110, duration: 90 * time.Millisecond, volume: 0.6},
	CueTether:      {freq: 880, duration: 60 * time.Millisecond, volume: 0.4},
	CueUntether:    {freq: 587, duration: 60 * time.Millisecond, volume: 0.4},
	CueScene:       {freq: 523, duration: 120 * time.Millisecond, volume: 0.25},
}

// Cues maps bus events to tones. A Cues value with no player is silent.
type Cues struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	play   func(beep.Streamer)
	subs   []*event.Subscription
	opened bool
	logger *logging.Logger
}

// New returns silent cues. Call Init to open the speaker.
func New(logger *logging.Logger) *Cues {
	return NewWithPlayer(SampleRate, nil, logger)
}

// NewWithPlayer returns cues that hand every streamer to play
func NewWithPlayer(rate beep.SampleRate, play func(beep.Streamer), logger *logging.Logger) *Cues {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Cues{
		rate:   rate,
		play:   play,
		logger: logger.Component("audio"),
	}
}

// Init opens the default speaker. On failure the cues stay silent.
func (c *Cues) Init() error {
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	c.mu.Lock()
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	c.opened = true
	c.mu.Unlock()
	return nil
}

// Close detaches the cues and closes the speaker if Init opened it
func (c *Cues) Close() {
	c.Detach()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play = nil
	if c.opened {
		speaker.Close()
		c.opened = false
	}
}

// Attach subscribes to every event that has a cue
func (c *Cues) Attach(bus *event.Bus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range []event.Type{event.GestureReleased, event.PlayerGrounded, event.TetherToggled, event.SceneChanged} {
		c.subs = append(c.subs, bus.Subscribe(t, c.handle))
	}
}

// Detach drops every subscription made by Attach
func (c *Cues) Detach() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, s := range subs {
		s.Cancel()
	}
}

// CueFor returns the cue for e
func CueFor(e event.Event) (Cue, bool) {
	switch ev := e.(type) {
	case *event.GestureEvent:
		if ev.Long {
			return CueLongRelease, true
		}
		return CueRelease, true
	case *event.PlayerEvent:
		if ev.GetType() == event.PlayerGrounded {
			return CueGrounded, true
		}
		if ev.Tethered {
			return CueTether, true
		}
		return CueUntether, true
	case *event.SceneEvent:
		return CueScene, true
	}
	return 0, false
}

func (c *Cues) handle(e event.Event) {
	cue, ok := CueFor(e)
	if !ok {
		return
	}
	c.Play(cue)
}

// Play sends the tone for cue to the speaker
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	play := c.play
	c.mu.Unlock()
	if play == nil {
		return
	}
	s, err := c.Streamer(cue)
	if err != nil {
		c.logger.Warn(context.Background(), "cue unavailable", "cue", int(cue), "error", err)
		return
	}
	play(s)
}

// Streamer builds the finite sample stream for cue
func (c *Cues) Streamer(cue Cue) (beep.Streamer, error) {
	t, ok := tones[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}
	sine, err := generators.SineTone(c.rate, t.freq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(c.rate.N(t.duration), sine),
		Base:     2,
		Volume:   math.Log2(t.volume),
	}, nil
}
