// pkg/engine/sandbox.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-tether/pkg/config"
	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/event"
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/logging"
	"github.com/opd-ai/go-tether/pkg/trace"
)

// Status is the lifecycle state of a sandbox
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

// FrameRecorder receives a snapshot of the active bodies after every tick.
// Record must not block.
type FrameRecorder interface {
	Record(frame trace.Frame)
}

// scenes maps each scene to the bodies it updates and draws, in order
var scenes = map[string][]string{
	config.SceneRope:        {"rope"},
	config.SceneMultispring: {"multispring"},
	config.SceneConstrained: {"constrained"},
	config.ScenePlayer:      {"player"},
	config.SceneClassic:     {"player", "rope"},
}

// Sandbox owns every body and advances the active scene one fixed step per tick
type Sandbox struct {
	Config      *config.SandboxConfig
	Bodies      map[string]entity.Body
	Player      *entity.Player
	EventBus    *event.Bus
	Recorder    FrameRecorder
	TimeStep    time.Duration
	CurrentTick uint64
	Status      Status

	mu          sync.Mutex
	scene       string
	active      []entity.Body
	playerState entity.PlayerState
	tetherState entity.TetherState
	logger      *logging.Logger
}

// NewSandbox builds every body with textures from r. A body that fails to
// load is fatal: the bodies already built are closed and the error returned.
func NewSandbox(cfg *config.SandboxConfig, r entity.Renderer, logger *logging.Logger) (*Sandbox, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sandbox configuration: %w", err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Sandbox{
		Config:   cfg,
		Bodies:   make(map[string]entity.Body),
		EventBus: event.NewEventBus(),
		TimeStep: cfg.TickInterval(),
		logger:   logger.Component("engine"),
	}

	if err := s.initBodies(r); err != nil {
		s.Close()
		return nil, err
	}

	s.playerState = s.Player.State()
	s.tetherState = s.Player.Tether()
	s.selectScene(cfg.Scene)

	return s, nil
}

func (s *Sandbox) initBodies(r entity.Renderer) error {
	rope, err := entity.NewRope(r, s.Config.RopeParams())
	if err != nil {
		return logging.WrapError(err, "create rope")
	}
	s.Bodies[rope.Name()] = rope

	multi, err := entity.NewMultispring(r, s.Config.MultispringParams())
	if err != nil {
		return logging.WrapError(err, "create multispring")
	}
	s.Bodies[multi.Name()] = multi

	constrained, err := entity.NewConstrainedRope(r, s.Config.ConstrainedParams())
	if err != nil {
		return logging.WrapError(err, "create constrained rope")
	}
	s.Bodies[constrained.Name()] = constrained

	player, err := entity.NewPlayer(r, s.Config.PlayerParams())
	if err != nil {
		return logging.WrapError(err, "create player")
	}
	s.Bodies[player.Name()] = player
	s.Player = player

	return nil
}

// Start marks the sandbox running and announces it
func (s *Sandbox) Start(ctx context.Context) {
	s.mu.Lock()
	s.Status = StatusRunning
	scene, tick := s.scene, s.CurrentTick
	s.mu.Unlock()

	s.logger.Info(ctx, "sandbox started", "scene", scene, "tick_ms", s.TimeStep.Milliseconds())
	s.EventBus.Publish(event.NewLifecycleEvent(event.SandboxStarted, s, scene, tick))
}

// Stop marks the sandbox stopped and announces it
func (s *Sandbox) Stop(ctx context.Context) {
	s.mu.Lock()
	if s.Status == StatusStopped {
		s.mu.Unlock()
		return
	}
	s.Status = StatusStopped
	scene, tick := s.scene, s.CurrentTick
	s.mu.Unlock()

	s.logger.Info(ctx, "sandbox stopped", "scene", scene, "ticks", tick)
	s.EventBus.Publish(event.NewLifecycleEvent(event.SandboxStopped, s, scene, tick))
}

// Scene returns the active scene name
func (s *Sandbox) Scene() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// SetScene switches the set of bodies that are updated and drawn. Bodies in
// the inactive scenes keep their state.
func (s *Sandbox) SetScene(name string) error {
	if !config.IsScene(name) {
		return fmt.Errorf("unknown scene %q", name)
	}

	s.mu.Lock()
	previous := s.scene
	if previous == name {
		s.mu.Unlock()
		return nil
	}
	s.selectScene(name)
	s.mu.Unlock()

	s.logger.Info(context.Background(), "scene changed", "scene", name, "previous", previous)
	s.EventBus.Publish(event.NewSceneEvent(s, name, previous))
	return nil
}

// SceneByIndex selects the scene bound to number key index+1
func (s *Sandbox) SceneByIndex(index int) error {
	if index < 0 || index >= len(config.Scenes) {
		return fmt.Errorf("no scene bound to index %d", index)
	}
	return s.SetScene(config.Scenes[index])
}

func (s *Sandbox) selectScene(name string) {
	s.scene = name
	s.active = s.active[:0]
	for _, bodyName := range scenes[name] {
		s.active = append(s.active, s.Bodies[bodyName])
	}
}

// ActiveBodies returns the bodies of the current scene
func (s *Sandbox) ActiveBodies() []entity.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Body, len(s.active))
	copy(out, s.active)
	return out
}

// Tick advances every active body by one fixed step
func (s *Sandbox) Tick(snap input.Snapshot) {
	s.mu.Lock()
	s.CurrentTick++
	tick := s.CurrentTick
	for _, body := range s.active {
		body.Update(snap)
	}
	frame := s.frameLocked(tick, snap)
	s.mu.Unlock()

	if snap.Gesture.Released() {
		s.EventBus.Publish(event.NewGestureEvent(s, snap.Gesture == input.LongReleased,
			snap.HoldDuration(), snap.PointerX, snap.PointerY))
	}
	s.publishPlayerTransitions(tick)

	if s.Recorder != nil {
		s.Recorder.Record(frame)
	}
}

// publishPlayerTransitions announces state machine edges of the player
func (s *Sandbox) publishPlayerTransitions(tick uint64) {
	state, tether := s.Player.State(), s.Player.Tether()
	pos := s.Player.Position

	if state != s.playerState {
		s.playerState = state
		if state == entity.Grounded {
			s.EventBus.Publish(event.NewPlayerEvent(event.PlayerGrounded, s, tick, tether == entity.Tethered, pos.X, pos.Y))
		}
	}
	if tether != s.tetherState {
		s.tetherState = tether
		s.EventBus.Publish(event.NewPlayerEvent(event.TetherToggled, s, tick, tether == entity.Tethered, pos.X, pos.Y))
	}
}

func (s *Sandbox) frameLocked(tick uint64, snap input.Snapshot) trace.Frame {
	frame := trace.Frame{
		Tick:      tick,
		Timestamp: snap.Timestamp,
		Scene:     s.scene,
		Gesture:   snap.Gesture.String(),
		Bodies:    make([]trace.Body, 0, len(s.active)),
	}
	for _, body := range s.active {
		points := body.Points()
		tb := trace.Body{Name: body.Name(), Points: make([][2]float64, len(points))}
		for i, p := range points {
			tb.Points[i] = [2]float64{p.X, p.Y}
		}
		frame.Bodies = append(frame.Bodies, tb)
	}
	return frame
}

// Draw clears the frame, draws every active body and presents
func (s *Sandbox) Draw(r entity.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Clear()
	for _, body := range s.active {
		body.Draw(r)
	}
	r.Present()
}

// Step runs one full frame: poll, tick, draw and consume the gesture.
// It returns false when the source asks to quit.
func (s *Sandbox) Step(src input.Source, r entity.Renderer) bool {
	snap, ok := src.Poll()
	if !ok {
		return false
	}
	s.Tick(snap)
	s.Draw(r)
	src.Consume()
	return true
}

// Run steps the sandbox on a fixed ticker until ctx is cancelled or the source
// quits. The timestep is fixed: a late tick is not stretched to catch up.
func (s *Sandbox) Run(ctx context.Context, src input.Source, r entity.Renderer) error {
	ticker := time.NewTicker(s.TimeStep)
	defer ticker.Stop()

	s.Start(ctx)
	defer s.Stop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !s.Step(src, r) {
				return nil
			}
		}
	}
}

// Close releases every body's texture
func (s *Sandbox) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, body := range s.Bodies {
		body.Close()
	}
}
