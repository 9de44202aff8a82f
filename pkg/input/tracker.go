// pkg/input/tracker.go
package input

import "time"

// DefaultLongPressThreshold is ten 16 ms frames
const DefaultLongPressThreshold = 160 * time.Millisecond

// Tracker folds raw press, release and motion events into a Gesture.
// It is not safe for concurrent use: frontends feed it from the frame loop.
type Tracker struct {
	threshold int64

	gesture   Gesture
	pressAt   int64
	releaseAt int64
	pressX    int
	pressY    int
	x, y      int

	// queued holds button events that arrived while a release was still
	// waiting to be consumed. They are replayed by Consume.
	queued []buttonEvent
}

type buttonEvent struct {
	press bool
	x, y  int
	at    int64
}

// NewTracker creates a tracker. A non-positive threshold selects the default.
func NewTracker(threshold time.Duration) *Tracker {
	if threshold <= 0 {
		threshold = DefaultLongPressThreshold
	}
	return &Tracker{
		threshold: threshold.Milliseconds(),
	}
}

// Threshold returns the long-press threshold in milliseconds
func (t *Tracker) Threshold() int64 {
	return t.threshold
}

// Move records the latest pointer position
func (t *Tracker) Move(x, y int) {
	t.x, t.y = x, y
}

// Press starts a hold at (x, y). A press while already held restarts the hold.
// A press that arrives before a pending release is consumed waits behind it.
func (t *Tracker) Press(x, y int, at int64) {
	t.Move(x, y)
	if t.gesture.Released() {
		t.queued = append(t.queued, buttonEvent{press: true, x: x, y: y, at: at})
		return
	}
	t.press(x, y, at)
}

// Release ends the current hold and classifies it. A release without a
// matching press is ignored.
func (t *Tracker) Release(x, y int, at int64) {
	t.Move(x, y)
	if t.gesture.Released() {
		t.queued = append(t.queued, buttonEvent{x: x, y: y, at: at})
		return
	}
	t.release(at)
}

func (t *Tracker) press(x, y int, at int64) {
	t.gesture = Held
	t.pressAt = at
	t.pressX, t.pressY = x, y
}

func (t *Tracker) release(at int64) {
	if t.gesture != Held {
		return
	}
	t.releaseAt = at
	if at-t.pressAt > t.threshold {
		t.gesture = LongReleased
	} else {
		t.gesture = ShortReleased
	}
}

// Held reports whether the button is currently down
func (t *Tracker) Held() bool {
	return t.gesture == Held
}

// Snapshot returns the state to feed to the tick running at now
func (t *Tracker) Snapshot(now int64) Snapshot {
	return Snapshot{
		Gesture:          t.gesture,
		PressTimestamp:   t.pressAt,
		ReleaseTimestamp: t.releaseAt,
		PressX:           t.pressX,
		PressY:           t.pressY,
		PointerX:         t.x,
		PointerY:         t.y,
		Timestamp:        now,
	}
}

// Consume resets a pending release to Idle, then replays queued button
// events until the next release is pending. Held and Idle are left alone.
func (t *Tracker) Consume() {
	if !t.gesture.Released() {
		return
	}
	t.gesture = Idle
	for len(t.queued) > 0 && !t.gesture.Released() {
		e := t.queued[0]
		t.queued = t.queued[1:]
		if e.press {
			t.press(e.x, e.y, e.at)
		} else {
			t.release(e.at)
		}
	}
}
