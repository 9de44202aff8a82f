package physics

// KinematicState tracks a body moved directly by velocity with no forces
// besides what its controller applies.
type KinematicState struct {
	Position Vector2D
	Velocity Vector2D
}

// Integrate moves the body by one step of its current velocity. Velocity is
// expressed in units per step.
func (s *KinematicState) Integrate() {
	s.Position.AddInPlace(s.Velocity)
}

// Accelerate applies an acceleration over dt to the velocity
func (s *KinematicState) Accelerate(accel Vector2D, dt float64) {
	s.Velocity.AddInPlace(accel.Scale(dt))
}
