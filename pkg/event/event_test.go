// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "SceneChanged event",
			eventType: SceneChanged,
			source:    "sandbox",
		},
		{
			name:      "TetherToggled event",
			eventType: TetherToggled,
			source:    123,
		},
		{
			name:      "Empty source",
			eventType: SandboxStarted,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	sub := bus.Subscribe(GestureReleased, func(e Event) {})

	if sub == nil {
		t.Fatal("Subscribe() returned nil subscription")
	}

	if sub.ID == 0 {
		t.Error("subscription ID should not be 0")
	}

	if sub.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}

	bus.mu.RLock()
	handlers := bus.handlers[GestureReleased]
	bus.mu.RUnlock()

	if len(handlers) != 1 {
		t.Errorf("expected 1 handler, got %d", len(handlers))
	}
}

func TestBusSubscribe_MultipleHandlers_AllRegistered(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(PlayerGrounded, func(e Event) {})
	sub2 := bus.Subscribe(PlayerGrounded, func(e Event) {})
	_ = bus.Subscribe(SceneChanged, func(e Event) {})

	if sub1.ID == sub2.ID {
		t.Error("subscriptions should have unique IDs")
	}

	bus.mu.RLock()
	playerHandlers := bus.handlers[PlayerGrounded]
	sceneHandlers := bus.handlers[SceneChanged]
	bus.mu.RUnlock()

	if len(playerHandlers) != 2 {
		t.Errorf("expected 2 handlers for PlayerGrounded, got %d", len(playerHandlers))
	}

	if len(sceneHandlers) != 1 {
		t.Errorf("expected 1 handler for SceneChanged, got %d", len(sceneHandlers))
	}
}

func TestBusPublish_WithSubscribers_CallsAllHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(TetherToggled, func(e Event) { order = append(order, 1) })
	bus.Subscribe(TetherToggled, func(e Event) { order = append(order, 2) })

	bus.Publish(&BaseEvent{EventType: TetherToggled, Source: "test"})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handlers called in order %v, want [1 2]", order)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()

	// Should not panic
	bus.Publish(&BaseEvent{EventType: SandboxStopped, Source: "test"})
}

func TestBusPublish_WrongEventType_HandlersNotCalled(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	bus.Subscribe(PlayerGrounded, func(e Event) { handlerCalled = true })
	bus.Publish(&BaseEvent{EventType: TetherToggled, Source: "test"})

	if handlerCalled {
		t.Error("handler should not have been called for different event type")
	}
}

func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	sub := bus.Subscribe(SceneChanged, func(e Event) { handlerCalled = true })
	sub.Cancel()

	bus.mu.RLock()
	remaining := len(bus.handlers[SceneChanged])
	bus.mu.RUnlock()

	if remaining != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", remaining)
	}

	bus.Publish(&BaseEvent{EventType: SceneChanged, Source: "test"})

	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

func TestBusUnsubscribe_NilAndRepeated_NoPanic(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(SceneChanged, func(e Event) {})

	bus.Unsubscribe(nil)
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)

	if n := len(bus.handlers[SceneChanged]); n != 0 {
		t.Errorf("expected 0 handlers, got %d", n)
	}
}

func TestCancelMultipleSubscriptions_DifferentTypes_OnlyTargetRemoved(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false
	handler3Called := false

	sub1 := bus.Subscribe(PlayerGrounded, func(e Event) { handler1Called = true })
	_ = bus.Subscribe(PlayerGrounded, func(e Event) { handler2Called = true })
	_ = bus.Subscribe(GestureReleased, func(e Event) { handler3Called = true })

	sub1.Cancel()

	bus.Publish(&BaseEvent{EventType: PlayerGrounded, Source: "test"})
	bus.Publish(&BaseEvent{EventType: GestureReleased, Source: "test"})

	if handler1Called {
		t.Error("handler1 should not be called after cancellation")
	}

	if !handler2Called {
		t.Error("handler2 should be called")
	}

	if !handler3Called {
		t.Error("handler3 should be called")
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	handlerCount := 0

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(GestureReleased, handler)
		}()
	}
	wg.Wait()

	event := &BaseEvent{EventType: GestureReleased, Source: "test"}
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(event)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if handlerCount != numGoroutines*3 {
		t.Errorf("expected %d handler calls, got %d", numGoroutines*3, handlerCount)
	}
}

func TestNewSceneEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewSceneEvent("sandbox", "constrained", "rope")

	if event.GetType() != SceneChanged {
		t.Errorf("GetType() = %v, want %v", event.GetType(), SceneChanged)
	}

	if event.Scene != "constrained" || event.Previous != "rope" {
		t.Errorf("got scene %q previous %q", event.Scene, event.Previous)
	}
}

func TestNewGestureEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	tests := []struct {
		name string
		long bool
		hold int64
	}{
		{"short release", false, 100},
		{"long release", true, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewGestureEvent(nil, tt.long, tt.hold, 12, 34)

			if event.GetType() != GestureReleased {
				t.Errorf("GetType() = %v, want %v", event.GetType(), GestureReleased)
			}

			if event.Long != tt.long {
				t.Errorf("Long = %v, want %v", event.Long, tt.long)
			}

			if event.HoldDuration != tt.hold {
				t.Errorf("HoldDuration = %v, want %v", event.HoldDuration, tt.hold)
			}

			if event.X != 12 || event.Y != 34 {
				t.Errorf("position = (%d, %d), want (12, 34)", event.X, event.Y)
			}
		})
	}
}

func TestNewPlayerEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewPlayerEvent(PlayerGrounded, "player", 66, false, 10, 344)

	if event.GetType() != PlayerGrounded {
		t.Errorf("GetType() = %v, want %v", event.GetType(), PlayerGrounded)
	}

	if event.Tick != 66 {
		t.Errorf("Tick = %v, want 66", event.Tick)
	}

	if event.Y != 344 {
		t.Errorf("Y = %v, want 344", event.Y)
	}
}

func TestNewLifecycleEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewLifecycleEvent(SandboxStopped, nil, "classic", 900)

	if event.GetType() != SandboxStopped {
		t.Errorf("GetType() = %v, want %v", event.GetType(), SandboxStopped)
	}

	if event.Scene != "classic" || event.Tick != 900 {
		t.Errorf("got scene %q tick %d", event.Scene, event.Tick)
	}
}

func TestEventTypes_Constants_AllDefined(t *testing.T) {
	expectedTypes := []Type{
		SandboxStarted,
		SandboxStopped,
		SceneChanged,
		GestureReleased,
		PlayerGrounded,
		TetherToggled,
	}

	seen := make(map[Type]bool)
	for _, eventType := range expectedTypes {
		if string(eventType) == "" {
			t.Errorf("event type %v is empty", eventType)
		}
		if seen[eventType] {
			t.Errorf("event type %v is duplicated", eventType)
		}
		seen[eventType] = true
	}
}
