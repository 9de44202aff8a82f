// pkg/entity/constrained_rope.go
package entity

import (
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// DefaultConstrainedParams returns the position-based chain defaults.
// The pointer is doubled before it drives the pin.
func DefaultConstrainedParams() ChainParams {
	return ChainParams{
		Anchor:       physics.Vector2D{X: 100, Y: 100},
		Nodes:        10,
		Spacing:      10,
		Gravity:      physics.DefaultGravity,
		PointerScale: 2,
		Passes:       physics.DefaultRelaxationPasses,
		Texture:      DefaultTexture,
	}
}

// ConstrainedRope is a Verlet chain held at fixed link length by relaxation
type ConstrainedRope struct {
	BaseBody
	Chain *physics.VerletChain
	scale float64
}

// NewConstrainedRope lays the chain out horizontally ending at the anchor
func NewConstrainedRope(r Renderer, p ChainParams) (*ConstrainedRope, error) {
	base, err := newBaseBody(r, "constrained", p.Texture)
	if err != nil {
		return nil, err
	}
	chain := physics.NewVerletChain(physics.LayoutChain(p.Anchor, p.Nodes, p.Spacing))
	chain.Gravity = p.Gravity
	if p.Passes > 0 {
		chain.Passes = p.Passes
	}
	scale := p.PointerScale
	if scale == 0 {
		scale = 1
	}
	return &ConstrainedRope{BaseBody: base, Chain: chain, scale: scale}, nil
}

// Update drives the pin from the scaled pointer and steps the chain
func (c *ConstrainedRope) Update(snap input.Snapshot) {
	c.Chain.Step(pointer(snap).Scale(c.scale), physics.DeltaTime)
}

// Draw renders the links and the sprite on the free end
func (c *ConstrainedRope) Draw(r Renderer) {
	drawPolyline(r, c.Chain.Positions)
	if c.Chain.Len() > 0 {
		c.blit(r, c.Chain.Positions[0])
	}
}

// Points returns the node positions
func (c *ConstrainedRope) Points() []physics.Vector2D {
	return copyPoints(c.Chain.Positions)
}
