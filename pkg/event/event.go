// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Sandbox event types
const (
	SandboxStarted  Type = "sandbox_started"
	SandboxStopped  Type = "sandbox_stopped"
	SceneChanged    Type = "scene_changed"
	GestureReleased Type = "gesture_released"
	PlayerGrounded  Type = "player_grounded"
	TetherToggled   Type = "tether_toggled"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes a previously registered subscription
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.unsubscribe(sub.Type, sub.ID)
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// Copy so a concurrent Publish keeps iterating its own slice.
			remaining := make([]subscriber, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			b.handlers[eventType] = remaining
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// SceneEvent is published when the active scene changes
type SceneEvent struct {
	BaseEvent
	Scene    string
	Previous string
}

// NewSceneEvent creates a new scene change event
func NewSceneEvent(source interface{}, scene, previous string) *SceneEvent {
	return &SceneEvent{
		BaseEvent: BaseEvent{
			EventType: SceneChanged,
			Source:    source,
		},
		Scene:    scene,
		Previous: previous,
	}
}

// GestureEvent carries a released pointer gesture
type GestureEvent struct {
	BaseEvent
	Long         bool
	HoldDuration int64
	X, Y         int
}

// NewGestureEvent creates a new gesture release event
func NewGestureEvent(source interface{}, long bool, holdDuration int64, x, y int) *GestureEvent {
	return &GestureEvent{
		BaseEvent: BaseEvent{
			EventType: GestureReleased,
			Source:    source,
		},
		Long:         long,
		HoldDuration: holdDuration,
		X:            x,
		Y:            y,
	}
}

// PlayerEvent contains information about player state transitions
type PlayerEvent struct {
	BaseEvent
	Tick     uint64
	Tethered bool
	X, Y     float64
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, tick uint64, tethered bool, x, y float64) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:     tick,
		Tethered: tethered,
		X:        x,
		Y:        y,
	}
}

// LifecycleEvent marks the start or end of a sandbox run
type LifecycleEvent struct {
	BaseEvent
	Scene string
	Tick  uint64
}

// NewLifecycleEvent creates a new lifecycle event
func NewLifecycleEvent(eventType Type, source interface{}, scene string, tick uint64) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Scene: scene,
		Tick:  tick,
	}
}
