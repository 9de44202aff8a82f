package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

func TestNewRope_Defaults(t *testing.T) {
	rope, err := NewRope(&RecordingRenderer{}, DefaultRopeParams())
	require.NoError(t, err)

	assert.Equal(t, physics.Vector2D{X: 200, Y: 200}, rope.Tether.Position)
	assert.Equal(t, physics.Vector2D{X: 100, Y: 100}, rope.Tether.Anchor)
	assert.Equal(t, 100.0, rope.Tether.K)
	assert.InDelta(t, 141.421356, rope.Tether.RestLength, 1e-6)
}

func TestRope_UpdateIgnoresPointer(t *testing.T) {
	r := &RecordingRenderer{}
	a, _ := NewRope(r, DefaultRopeParams())
	b, _ := NewRope(r, DefaultRopeParams())

	for i := 0; i < 50; i++ {
		a.Update(snapshotAt(0, 0))
		b.Update(input.Snapshot{Gesture: input.Held, PointerX: 600, PointerY: 300})
	}

	assert.Equal(t, a.Tether.Position, b.Tether.Position)
}

func TestRope_DrawLineThenSprite(t *testing.T) {
	r := &RecordingRenderer{}
	rope, err := NewRope(r, DefaultRopeParams())
	require.NoError(t, err)

	rope.Draw(r)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, LineCall{X1: 208, Y1: 208, X2: 100, Y2: 100, Color: LineColor}, r.Lines[0])
	require.Len(t, r.Blits, 1)
	assert.Equal(t, 200, r.Blits[0].X)
	assert.Equal(t, 200, r.Blits[0].Y)
	assert.Same(t, r.Textures[0], r.Blits[0].Texture)
}

func TestRope_PointsEndAtAnchor(t *testing.T) {
	rope, _ := NewRope(&RecordingRenderer{}, DefaultRopeParams())

	points := rope.Points()

	require.Len(t, points, 2)
	assert.Equal(t, rope.Tether.Anchor, points[1])
}
