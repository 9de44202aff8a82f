// pkg/physics/verlet_chain.go
package physics

// DefaultRelaxationPasses is the number of constraint sweeps run per step.
const DefaultRelaxationPasses = 5

// Share weights for splitting a link's length error between its two nodes.
const (
	pinnedShare     = 0.1
	pinnedNeighbour = 0.9
	freeEndShare    = 1.0
	interiorShare   = 0.5
)

// VerletChain is a chain of point masses kept at a fixed link length by
// position-based distance constraints. Velocity is never stored: it is
// reconstructed from the current and previous positions every step.
type VerletChain struct {
	Positions []Vector2D
	Previous  []Vector2D
	Masses    []float64

	RestLength float64
	Gravity    Vector2D
	Passes     int

	// PassHook, when set, is called after every relaxation pass.
	PassHook func(pass int)
}

// NewVerletChain builds a chain at rest from initial node positions. The
// rest length is taken from the first link and frozen.
func NewVerletChain(positions []Vector2D) *VerletChain {
	n := len(positions)
	c := &VerletChain{
		Positions: make([]Vector2D, n),
		Previous:  make([]Vector2D, n),
		Masses:    make([]float64, n),
		Gravity:   DefaultGravity,
		Passes:    DefaultRelaxationPasses,
	}
	copy(c.Positions, positions)
	copy(c.Previous, positions)
	for i := range c.Masses {
		c.Masses[i] = 1.0
	}
	if n > 1 {
		c.RestLength = c.Positions[1].Sub(c.Positions[0]).Length()
	}
	return c
}

// Len returns the number of nodes in the chain
func (c *VerletChain) Len() int {
	return len(c.Positions)
}

// Pinned returns the index of the externally driven node
func (c *VerletChain) Pinned() int {
	return len(c.Positions) - 1
}

// Velocity returns the implicit velocity of node i over the last step
func (c *VerletChain) Velocity(i int) Vector2D {
	return c.Positions[i].Sub(c.Previous[i])
}

// LinkError returns |p[i+1]-p[i]| minus the rest length for link i
func (c *VerletChain) LinkError(i int) float64 {
	return c.Positions[i+1].Sub(c.Positions[i]).Length() - c.RestLength
}

// MaxLinkError returns the largest absolute link error in the chain
func (c *VerletChain) MaxLinkError() float64 {
	worst := 0.0
	for i := 0; i < c.Len()-1; i++ {
		e := c.LinkError(i)
		if e < 0 {
			e = -e
		}
		if e > worst {
			worst = e
		}
	}
	return worst
}

// Step drives the pinned node to pin, predicts every free node under gravity
// and then relaxes the distance constraints.
func (c *VerletChain) Step(pin Vector2D, dt float64) {
	pinned := c.Pinned()
	if pinned < 0 {
		return
	}

	for i := 0; i < pinned; i++ {
		velocity := c.Velocity(i)
		c.Previous[i] = c.Positions[i]

		force := c.Gravity.Scale(c.Masses[i])
		velocity.AddInPlace(force.Div(c.Masses[i]).Scale(dt))
		c.Positions[i].AddInPlace(velocity)
	}
	c.Previous[pinned] = c.Positions[pinned]
	c.Positions[pinned] = pin

	for pass := 0; pass < c.Passes; pass++ {
		c.relax()
		if c.PassHook != nil {
			c.PassHook(pass)
		}
	}
}

// shares returns how much of link m's error each endpoint absorbs. The pinned
// end acts heavy and the free end light.
func (c *VerletChain) shares(m int) (float64, float64) {
	switch {
	case m+1 == c.Pinned():
		return pinnedNeighbour, pinnedShare
	case m == 0:
		return freeEndShare, 1 - freeEndShare
	default:
		return interiorShare, interiorShare
	}
}

// relax runs one sweep from the pinned end toward the free end. The pinned
// node itself is never moved.
func (c *VerletChain) relax() {
	pinned := c.Pinned()
	for m := pinned - 1; m >= 0; m-- {
		n := m + 1
		d := c.Positions[n].Sub(c.Positions[m])
		length := d.Length()
		dir := d.Div(length)
		correction := dir.Scale(length - c.RestLength)

		shareM, shareN := c.shares(m)
		c.Positions[m].AddInPlace(correction.Scale(shareM))
		if n != pinned {
			c.Positions[n].SubInPlace(correction.Scale(shareN))
		}
	}
}
