// pkg/entity/rope.go
package entity

import (
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// RopeParams configures a Rope
type RopeParams struct {
	Anchor  physics.Vector2D
	Start   physics.Vector2D
	K       float64
	Gravity physics.Vector2D
	Texture string
}

// DefaultRopeParams returns the classic single-tether setup
func DefaultRopeParams() RopeParams {
	return RopeParams{
		Anchor:  physics.Vector2D{X: 100, Y: 100},
		Start:   physics.Vector2D{X: 200, Y: 200},
		K:       100,
		Gravity: physics.DefaultGravity,
		Texture: DefaultTexture,
	}
}

// Rope is a single point hanging from a fixed anchor on a spring
type Rope struct {
	BaseBody
	Tether *physics.Tether
}

// NewRope creates a rope at rest length
func NewRope(r Renderer, p RopeParams) (*Rope, error) {
	base, err := newBaseBody(r, "rope", p.Texture)
	if err != nil {
		return nil, err
	}
	tether := physics.NewTether(p.Anchor, p.Start, p.K)
	tether.Gravity = p.Gravity
	return &Rope{BaseBody: base, Tether: tether}, nil
}

// Update advances the tether one step. The rope ignores the pointer.
func (rp *Rope) Update(snap input.Snapshot) {
	rp.Tether.Step(physics.DeltaTime)
}

// Draw renders the spring from the sprite centre to the anchor, then the sprite
func (rp *Rope) Draw(r Renderer) {
	pos, anchor := rp.Tether.Position, rp.Tether.Anchor
	if pos.IsFinite() {
		r.DrawLine(int(pos.X)+8, int(pos.Y)+8, int(anchor.X), int(anchor.Y), LineColor)
	}
	rp.blit(r, pos)
}

// Points returns the free point followed by the anchor
func (rp *Rope) Points() []physics.Vector2D {
	return []physics.Vector2D{rp.Tether.Position, rp.Tether.Anchor}
}
