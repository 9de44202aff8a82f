// pkg/physics/tether.go
package physics

// Tether is a single point mass held to a fixed anchor by a Hookean spring.
// The rest length is the anchor distance at construction and never changes.
type Tether struct {
	Position     Vector2D
	Velocity     Vector2D
	Acceleration Vector2D
	Anchor       Vector2D
	K            float64
	RestLength   float64
	Gravity      Vector2D
}

// NewTether creates a tether at rest: the spring is neither stretched nor
// compressed and the mass has no velocity.
func NewTether(anchor, position Vector2D, k float64) *Tether {
	return &Tether{
		Position:   position,
		Anchor:     anchor,
		K:          k,
		RestLength: anchor.Sub(position).Length(),
		Gravity:    DefaultGravity,
	}
}

// Stretch returns the current extension of the spring beyond its rest length.
// Negative values mean the spring is compressed.
func (t *Tether) Stretch() float64 {
	return t.Anchor.Sub(t.Position).Length() - t.RestLength
}

// Step advances the tether by one explicit Euler step. There is no damping,
// so large K or dt diverge. The mass must not sit exactly on the anchor.
func (t *Tether) Step(dt float64) {
	displacement := t.Anchor.Sub(t.Position)
	stretch := t.Stretch()

	t.Acceleration = displacement.Normalize().Scale(t.K * stretch).Add(t.Gravity)
	t.Velocity.AddInPlace(t.Acceleration.Scale(dt))

	// Velocity is in units per step, not per second.
	t.Position.AddInPlace(t.Velocity)
}
