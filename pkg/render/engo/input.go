// pkg/render/engo/input.go
package engo

import (
	"time"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tether/pkg/input"
)

// sceneButtons are registered by SetupInputBindings, one per scene key
var sceneButtons = []string{"scene1", "scene2", "scene3", "scene4", "scene5"}

// SetupInputBindings sets up the key bindings for the sandbox
func SetupInputBindings() {
	engo.Input.RegisterButton("scene1", engo.KeyOne)
	engo.Input.RegisterButton("scene2", engo.KeyTwo)
	engo.Input.RegisterButton("scene3", engo.KeyThree)
	engo.Input.RegisterButton("scene4", engo.KeyFour)
	engo.Input.RegisterButton("scene5", engo.KeyFive)
	engo.Input.RegisterButton("quit", engo.KeyEscape)
}

// mouseState is the slice of engo's mouse the tracker cares about
type mouseState struct {
	X, Y   float32
	Action engo.Action
	Button engo.MouseButton
}

// InputSource reads engo's mouse and keyboard once per frame and implements
// input.Source.
type InputSource struct {
	tracker *input.Tracker
	down    bool

	// Now returns the current time in milliseconds
	Now func() int64
	// OnScene is called with a zero-based scene index when a number key is pressed
	OnScene func(index int)

	mouse   func() mouseState
	pressed func(button string) bool
}

// NewInputSource creates an input source bound to engo.Input
func NewInputSource(tracker *input.Tracker) *InputSource {
	return &InputSource{
		tracker: tracker,
		Now:     func() int64 { return time.Now().UnixMilli() },
		mouse: func() mouseState {
			m := engo.Input.Mouse
			return mouseState{X: m.X, Y: m.Y, Action: m.Action, Button: m.Button}
		},
		pressed: func(button string) bool {
			return engo.Input.Button(button).JustPressed()
		},
	}
}

// Poll implements input.Source
func (in *InputSource) Poll() (input.Snapshot, bool) {
	if in.pressed("quit") {
		return input.Snapshot{}, false
	}
	for i, name := range sceneButtons {
		if in.pressed(name) && in.OnScene != nil {
			in.OnScene(i)
		}
	}
	in.applyMouse(in.mouse())
	return in.tracker.Snapshot(in.Now()), true
}

// Consume implements input.Source
func (in *InputSource) Consume() {
	in.tracker.Consume()
}

func (in *InputSource) applyMouse(m mouseState) {
	x, y := int(m.X), int(m.Y)
	left := m.Button == engo.MouseButtonLeft
	switch {
	case m.Action == engo.Press && left && !in.down:
		in.down = true
		in.tracker.Press(x, y, in.Now())
	case m.Action == engo.Release && left && in.down:
		in.down = false
		in.tracker.Release(x, y, in.Now())
	default:
		in.tracker.Move(x, y)
	}
}
