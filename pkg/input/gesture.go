// pkg/input/gesture.go
package input

// Gesture classifies the state of the primary pointer button for one frame
type Gesture int

const (
	// Idle means the button is up and no release is pending
	Idle Gesture = iota
	// ShortReleased is a release after a hold no longer than the threshold
	ShortReleased
	// LongReleased is a release after a hold longer than the threshold
	LongReleased
	// Held means the button is currently down
	Held
)

// String returns the gesture name
func (g Gesture) String() string {
	switch g {
	case Idle:
		return "idle"
	case ShortReleased:
		return "short_released"
	case LongReleased:
		return "long_released"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}

// Released reports whether g is one of the edge-triggered release gestures
func (g Gesture) Released() bool {
	return g == ShortReleased || g == LongReleased
}

// Snapshot is the pointer state seen by every body during one tick.
// Timestamps are milliseconds on the frontend's clock.
type Snapshot struct {
	Gesture          Gesture
	PressTimestamp   int64
	ReleaseTimestamp int64
	PressX, PressY   int
	PointerX         int
	PointerY         int
	Timestamp        int64
}

// HoldDuration returns how long the button has been, or was, held down.
// It is zero when no press has been recorded.
func (s Snapshot) HoldDuration() int64 {
	switch s.Gesture {
	case Held:
		return s.Timestamp - s.PressTimestamp
	case ShortReleased, LongReleased:
		return s.ReleaseTimestamp - s.PressTimestamp
	default:
		return 0
	}
}

// Source produces one snapshot per tick.
type Source interface {
	// Poll returns the snapshot for the coming tick. It returns false once the
	// user has asked to quit.
	Poll() (Snapshot, bool)
	// Consume clears an edge-triggered release after the tick has seen it.
	Consume()
}
