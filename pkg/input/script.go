// pkg/input/script.go
package input

// FrameMillis is the clock advance of one scripted frame
const FrameMillis = 16

// Step holds the pointer at (X, Y) for Frames ticks with the button Down or up
type Step struct {
	Frames int
	X, Y   int
	Down   bool
}

// Script is a Source that replays a fixed pointer path on a synthetic clock.
// It is used by headless runs and tests.
type Script struct {
	steps   []Step
	tracker *Tracker
	step    int
	frame   int
	now     int64
}

// NewScript creates a scripted source using the default long-press threshold
func NewScript(steps ...Step) *Script {
	return &Script{
		steps:   steps,
		tracker: NewTracker(DefaultLongPressThreshold),
	}
}

// Poll advances the clock by one frame and applies the current step.
// It returns false when every step has been played.
func (s *Script) Poll() (Snapshot, bool) {
	for s.step < len(s.steps) && s.frame >= s.steps[s.step].Frames {
		s.step++
		s.frame = 0
	}
	if s.step >= len(s.steps) {
		return s.tracker.Snapshot(s.now), false
	}

	st := s.steps[s.step]
	s.now += FrameMillis
	s.frame++

	switch {
	case st.Down && !s.tracker.Held():
		s.tracker.Press(st.X, st.Y, s.now)
	case !st.Down && s.tracker.Held():
		s.tracker.Release(st.X, st.Y, s.now)
	default:
		s.tracker.Move(st.X, st.Y)
	}
	return s.tracker.Snapshot(s.now), true
}

// Consume clears a pending release
func (s *Script) Consume() {
	s.tracker.Consume()
}

// Frames returns the total number of ticks the script plays
func (s *Script) Frames() int {
	total := 0
	for _, st := range s.steps {
		total += st.Frames
	}
	return total
}
