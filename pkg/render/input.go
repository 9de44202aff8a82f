package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-tether/pkg/input"
)

// TerminalInput turns tcell mouse and key events into snapshots. The left
// button drives the gesture tracker, keys 1 to 5 select a scene and Escape
// or Ctrl-C quits.
type TerminalInput struct {
	tracker  *input.Tracker
	renderer *TerminalRenderer
	events   chan tcell.Event
	down     bool
	quit     bool

	// Now returns the current time in milliseconds
	Now func() int64
	// OnScene is called with a zero-based scene index when a number key is pressed
	OnScene func(index int)
}

// NewTerminalInput creates an input source mapping cells through r
func NewTerminalInput(tracker *input.Tracker, r *TerminalRenderer) *TerminalInput {
	return &TerminalInput{
		tracker:  tracker,
		renderer: r,
		events:   make(chan tcell.Event, 100),
		Now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Listen forwards screen events to the input until ctx is done or the screen
// is finalised. Run it on its own goroutine.
func (in *TerminalInput) Listen(ctx context.Context, screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case in.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Poll implements input.Source. Pending events are applied before the
// snapshot is taken.
func (in *TerminalInput) Poll() (input.Snapshot, bool) {
drain:
	for {
		select {
		case ev := <-in.events:
			in.Handle(ev)
		default:
			break drain
		}
	}
	if in.quit {
		return input.Snapshot{}, false
	}
	return in.tracker.Snapshot(in.Now()), true
}

// Consume implements input.Source
func (in *TerminalInput) Consume() {
	in.tracker.Consume()
}

// Handle applies one event
func (in *TerminalInput) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := in.renderer.ToPixel(cx, cy)
		down := ev.Buttons()&tcell.Button1 != 0
		switch {
		case down && !in.down:
			in.tracker.Press(x, y, in.Now())
		case !down && in.down:
			in.tracker.Release(x, y, in.Now())
		default:
			in.tracker.Move(x, y)
		}
		in.down = down

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.quit = true
		case tcell.KeyRune:
			if r := ev.Rune(); r >= '1' && r <= '9' && in.OnScene != nil {
				in.OnScene(int(r - '1'))
			}
		}
	}
}
