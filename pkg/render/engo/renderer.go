// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// renderSink is the part of common.RenderSystem the renderer feeds
type renderSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type drawEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// entityPool reuses render entities across frames. Entities beyond what the
// current frame used are hidden rather than removed.
type entityPool struct {
	sink     renderSink
	entities []*drawEntity
	used     int
	zIndex   float32
}

func (p *entityPool) next() *drawEntity {
	if p.used == len(p.entities) {
		e := &drawEntity{BasicEntity: ecs.NewBasic()}
		e.RenderComponent.SetZIndex(p.zIndex)
		p.sink.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
		p.entities = append(p.entities, e)
	}
	e := p.entities[p.used]
	p.used++
	e.Hidden = false
	return e
}

func (p *entityPool) reset() {
	p.used = 0
}

func (p *entityPool) hideUnused() {
	for _, e := range p.entities[p.used:] {
		e.Hidden = true
	}
}

func (p *entityPool) clear() {
	for _, e := range p.entities {
		p.sink.Remove(e.BasicEntity)
	}
	p.entities = nil
	p.used = 0
}

// EngoRenderer implements entity.Renderer on engo's render system. Each frame
// borrows sprite and line entities from pools; Present hides the leftovers.
type EngoRenderer struct {
	assets  *AssetManager
	sprites entityPool
	lines   entityPool
}

// NewEngoRenderer creates a renderer drawing through sink
func NewEngoRenderer(sink renderSink, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		assets:  assets,
		sprites: entityPool{sink: sink, zIndex: 1},
		lines:   entityPool{sink: sink, zIndex: 0},
	}
}

// LoadTexture implements entity.Renderer
func (r *EngoRenderer) LoadTexture(name string) (entity.Texture, error) {
	return r.assets.Texture(name)
}

// Blit implements entity.Renderer
func (r *EngoRenderer) Blit(tex entity.Texture, x, y int) {
	t, ok := tex.(*Texture)
	if !ok {
		return
	}
	e := r.sprites.next()
	e.Drawable = t.drawable
	e.Color = color.White
	e.Scale = engo.Point{X: 1, Y: 1}
	e.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: float32(x), Y: float32(y)},
		Width:    float32(t.width),
		Height:   float32(t.height),
	}
}

// DrawLine implements entity.Renderer. A stretched white pixel is rotated
// about its start point.
func (r *EngoRenderer) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	g := lineGeometry(x1, y1, x2, y2)
	e := r.lines.next()
	e.Drawable = r.assets.Pixel()
	e.Color = c
	e.Scale = engo.Point{X: g.length, Y: 1}
	e.SpaceComponent = common.SpaceComponent{
		Position: g.origin,
		Width:    g.length,
		Height:   1,
		Rotation: g.degrees,
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	r.sprites.reset()
	r.lines.reset()
}

// Present implements entity.Renderer. engo draws the frame itself after the
// systems update.
func (r *EngoRenderer) Present() {
	r.sprites.hideUnused()
	r.lines.hideUnused()
}

// Close removes every pooled entity from the render system
func (r *EngoRenderer) Close() {
	r.sprites.clear()
	r.lines.clear()
}

type segment struct {
	origin  engo.Point
	length  float32
	degrees float32
}

// lineGeometry returns where a unit-height strip must sit to cover the
// segment from (x1, y1) to (x2, y2). Zero-length segments get length 1 so
// they still show a dot.
func lineGeometry(x1, y1, x2, y2 int) segment {
	from := physics.Vector2D{X: float64(x1), Y: float64(y1)}
	to := physics.Vector2D{X: float64(x2), Y: float64(y2)}
	length := from.Distance(to)
	if length < 1 {
		length = 1
	}
	return segment{
		origin:  engo.Point{X: float32(x1), Y: float32(y1)},
		length:  float32(length),
		degrees: float32(to.Sub(from).Angle() * 180 / math.Pi),
	}
}
