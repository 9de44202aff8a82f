// pkg/entity/entity.go
package entity

import (
	"fmt"

	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// DefaultTexture is the sprite every body is drawn with
const DefaultTexture = "yellow.png"

// Body is a simulated object advanced once per tick
type Body interface {
	Name() string
	Update(snap input.Snapshot)
	Draw(r Renderer)
	// Points returns a copy of the body's node positions, pinned end last.
	Points() []physics.Vector2D
	Close()
}

// BaseBody holds what every body shares: a name and its texture handle
type BaseBody struct {
	name    string
	texture Texture
}

func newBaseBody(r Renderer, name, texture string) (BaseBody, error) {
	if texture == "" {
		texture = DefaultTexture
	}
	tex, err := r.LoadTexture(texture)
	if err != nil {
		return BaseBody{}, fmt.Errorf("load texture %q for %s: %w", texture, name, err)
	}
	return BaseBody{name: name, texture: tex}, nil
}

// Name returns the body's name
func (b *BaseBody) Name() string {
	return b.name
}

// Texture returns the body's texture, nil once closed
func (b *BaseBody) Texture() Texture {
	return b.texture
}

// Close releases the texture. Calling it twice is harmless.
func (b *BaseBody) Close() {
	if b.texture != nil {
		b.texture.Release()
		b.texture = nil
	}
}

func (b *BaseBody) blit(r Renderer, p physics.Vector2D) {
	if b.texture == nil || !p.IsFinite() {
		return
	}
	r.Blit(b.texture, int(p.X), int(p.Y))
}

// drawPolyline joins consecutive points with white lines. Segments touching a
// diverged (NaN or infinite) point are skipped.
func drawPolyline(r Renderer, points []physics.Vector2D) {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if !a.IsFinite() || !b.IsFinite() {
			continue
		}
		r.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), LineColor)
	}
}

func pointer(snap input.Snapshot) physics.Vector2D {
	return physics.Vector2D{X: float64(snap.PointerX), Y: float64(snap.PointerY)}
}

func copyPoints(points []physics.Vector2D) []physics.Vector2D {
	out := make([]physics.Vector2D, len(points))
	copy(out, points)
	return out
}
