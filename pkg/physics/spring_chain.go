// pkg/physics/spring_chain.go
package physics

import "math"

// SpringChain is a linear chain of point masses joined by Hookean springs.
// The last node is pinned: its position is set from outside every step and no
// physics is applied to it. Node 0 is the free end.
type SpringChain struct {
	Positions     []Vector2D
	Velocities    []Vector2D
	Accelerations []Vector2D
	Forces        []Vector2D
	Masses        []float64

	// RestLength is shared by every link, measured once between nodes 0 and 1.
	RestLength float64
	K          float64
	Friction   float64
	Gravity    Vector2D
}

// NewSpringChain builds a chain from initial node positions. Every node has a
// mass of 1 except the free end, which gets endMass.
func NewSpringChain(positions []Vector2D, k, friction, endMass float64) *SpringChain {
	n := len(positions)
	c := &SpringChain{
		Positions:     make([]Vector2D, n),
		Velocities:    make([]Vector2D, n),
		Accelerations: make([]Vector2D, n),
		Forces:        make([]Vector2D, n),
		Masses:        make([]float64, n),
		K:             k,
		Friction:      friction,
		Gravity:       DefaultGravity,
	}
	copy(c.Positions, positions)
	for i := range c.Masses {
		c.Masses[i] = 1.0
	}
	if n > 0 {
		c.Masses[0] = endMass
	}
	if n > 1 {
		c.RestLength = c.Positions[1].Sub(c.Positions[0]).Length()
	}
	return c
}

// Len returns the number of nodes in the chain
func (c *SpringChain) Len() int {
	return len(c.Positions)
}

// Pinned returns the index of the externally driven node
func (c *SpringChain) Pinned() int {
	return len(c.Positions) - 1
}

// springForce returns the force pulling node i toward node j.
// With slackOnly set, a compressed spring exerts nothing.
func (c *SpringChain) springForce(i, j int, slackOnly bool) Vector2D {
	d := c.Positions[j].Sub(c.Positions[i])
	stretch := d.Length() - c.RestLength
	if slackOnly {
		stretch = math.Max(stretch, 0)
	}
	return d.Normalize().Scale(c.K * stretch)
}

// Step pins the last node to pin and advances every other node by dt.
// Velocities of all free nodes are updated before any position moves, so no
// node sees a neighbour's new position within the same step.
func (c *SpringChain) Step(pin Vector2D, dt float64) {
	pinned := c.Pinned()
	if pinned < 0 {
		return
	}
	c.Positions[pinned] = pin

	for i := 0; i < pinned; i++ {
		force := c.springForce(i, i+1, false)
		if i > 0 {
			force.AddInPlace(c.springForce(i, i-1, true))
		}
		force.AddInPlace(c.Gravity.Scale(c.Masses[i]))
		force.SubInPlace(c.Velocities[i].Scale(c.Friction))

		c.Forces[i] = force
		c.Accelerations[i] = force.Div(c.Masses[i])
		c.Velocities[i].AddInPlace(c.Accelerations[i].Scale(dt))
	}

	for i := 0; i < pinned; i++ {
		c.Positions[i].AddInPlace(c.Velocities[i])
	}
}
