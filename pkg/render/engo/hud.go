// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tether/pkg/event"
)

// HUDSystem draws a one-line status of the sandbox in the top-left corner.
// Its text is driven entirely by bus events.
type HUDSystem struct {
	mu      sync.Mutex
	scene   string
	gesture string
	player  string
	tether  string

	subs []*event.Subscription

	font     *common.Font
	text     *drawEntity
	hudColor color.Color
}

// NewHUDSystem creates a new HUD showing scene as the active scene
func NewHUDSystem(scene string) *HUDSystem {
	return &HUDSystem{
		scene:    scene,
		gesture:  "none",
		player:   "airborne",
		tether:   "untethered",
		hudColor: color.RGBA{255, 255, 255, 255},
	}
}

// Attach subscribes the HUD to bus
func (hud *HUDSystem) Attach(bus *event.Bus) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	for _, t := range []event.Type{event.SceneChanged, event.GestureReleased, event.PlayerGrounded, event.TetherToggled} {
		hud.subs = append(hud.subs, bus.Subscribe(t, hud.handle))
	}
}

// Detach drops the HUD's subscriptions
func (hud *HUDSystem) Detach() {
	hud.mu.Lock()
	subs := hud.subs
	hud.subs = nil
	hud.mu.Unlock()
	for _, s := range subs {
		s.Cancel()
	}
}

func (hud *HUDSystem) handle(e event.Event) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	switch ev := e.(type) {
	case *event.SceneEvent:
		hud.scene = ev.Scene
	case *event.GestureEvent:
		kind := "short"
		if ev.Long {
			kind = "long"
		}
		hud.gesture = fmt.Sprintf("%s %dms", kind, ev.HoldDuration)
	case *event.PlayerEvent:
		if ev.GetType() == event.PlayerGrounded {
			hud.player = "grounded"
		}
		if ev.Tethered {
			hud.tether = "tethered"
		} else {
			hud.tether = "untethered"
		}
	}
}

// Status returns the text the HUD shows
func (hud *HUDSystem) Status() string {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	return fmt.Sprintf("scene: %s   release: %s   player: %s, %s", hud.scene, hud.gesture, hud.player, hud.tether)
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// Place adds the HUD's text entity to sink. Without a font the HUD stays
// invisible.
func (hud *HUDSystem) Place(sink renderSink) {
	if hud.font == nil || hud.text != nil {
		return
	}
	hud.text = &drawEntity{BasicEntity: ecs.NewBasic()}
	hud.text.Color = hud.hudColor
	hud.text.SetZIndex(10)
	hud.text.Position = engo.Point{X: 8, Y: 8}
	hud.text.Drawable = common.Text{Font: hud.font, Text: hud.Status()}
	sink.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
}

// Update refreshes the text entity
func (hud *HUDSystem) Update(dt float32) {
	if hud.text == nil {
		return
	}
	status := hud.Status()
	if t, ok := hud.text.Drawable.(common.Text); ok && t.Text == status {
		return
	}
	hud.text.Drawable = common.Text{Font: hud.font, Text: status}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}
