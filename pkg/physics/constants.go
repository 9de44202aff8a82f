package physics

// DeltaTime is the fixed simulation step in seconds (16 ms per frame).
const DeltaTime = 16.0 / 1000.0

// DefaultGravity is the downward acceleration applied to every free body.
// Screen space: positive Y points down.
var DefaultGravity = Vector2D{X: 0, Y: 10}

// LayoutChain places n nodes on a horizontal line ending at anchor, spacing
// apart. The last node sits on the anchor and node 0 is furthest left.
func LayoutChain(anchor Vector2D, n int, spacing float64) []Vector2D {
	positions := make([]Vector2D, n)
	for i := range positions {
		positions[i] = Vector2D{X: anchor.X - float64(n-1-i)*spacing, Y: anchor.Y}
	}
	return positions
}
