// pkg/entity/multispring.go
package entity

import (
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// ChainParams configures the two chain bodies
type ChainParams struct {
	Anchor   physics.Vector2D
	Nodes    int
	Spacing  float64
	K        float64
	Friction float64
	EndMass  float64
	Gravity  physics.Vector2D
	// PointerScale multiplies the pointer position before it drives the pin.
	PointerScale float64
	Passes       int
	Texture      string
}

// DefaultMultispringParams returns the mass-spring chain defaults
func DefaultMultispringParams() ChainParams {
	return ChainParams{
		Anchor:       physics.Vector2D{X: 100, Y: 100},
		Nodes:        10,
		Spacing:      10,
		K:            40,
		Friction:     2,
		EndMass:      2,
		Gravity:      physics.DefaultGravity,
		PointerScale: 1,
		Texture:      DefaultTexture,
	}
}

// Multispring is a chain of point masses joined by springs, its last node
// following the pointer
type Multispring struct {
	BaseBody
	Chain *physics.SpringChain
	scale float64
}

// NewMultispring lays the chain out horizontally ending at the anchor
func NewMultispring(r Renderer, p ChainParams) (*Multispring, error) {
	base, err := newBaseBody(r, "multispring", p.Texture)
	if err != nil {
		return nil, err
	}
	chain := physics.NewSpringChain(physics.LayoutChain(p.Anchor, p.Nodes, p.Spacing), p.K, p.Friction, p.EndMass)
	chain.Gravity = p.Gravity
	scale := p.PointerScale
	if scale == 0 {
		scale = 1
	}
	return &Multispring{BaseBody: base, Chain: chain, scale: scale}, nil
}

// Update pins the last node to the pointer and steps the chain
func (m *Multispring) Update(snap input.Snapshot) {
	m.Chain.Step(pointer(snap).Scale(m.scale), physics.DeltaTime)
}

// Draw renders the links and the sprite on the free end
func (m *Multispring) Draw(r Renderer) {
	drawPolyline(r, m.Chain.Positions)
	if m.Chain.Len() > 0 {
		m.blit(r, m.Chain.Positions[0])
	}
}

// Points returns the node positions
func (m *Multispring) Points() []physics.Vector2D {
	return copyPoints(m.Chain.Positions)
}
