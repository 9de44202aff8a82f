package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

func TestBodies_ImplementBody(t *testing.T) {
	var _ Body = (*Rope)(nil)
	var _ Body = (*Multispring)(nil)
	var _ Body = (*ConstrainedRope)(nil)
	var _ Body = (*Player)(nil)
}

func TestNewBodies_TextureFailureIsReturned(t *testing.T) {
	r := &RecordingRenderer{LoadErr: errNoTexture}

	tests := []struct {
		name string
		make func() (Body, error)
	}{
		{"rope", func() (Body, error) { return NewRope(r, DefaultRopeParams()) }},
		{"multispring", func() (Body, error) { return NewMultispring(r, DefaultMultispringParams()) }},
		{"constrained", func() (Body, error) { return NewConstrainedRope(r, DefaultConstrainedParams()) }},
		{"player", func() (Body, error) { return NewPlayer(r, DefaultPlayerParams()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			require.Error(t, err)
			assert.ErrorIs(t, err, errNoTexture)
			assert.Contains(t, err.Error(), tt.name)
			assert.Contains(t, err.Error(), DefaultTexture)
		})
	}
}

func TestBaseBody_EmptyTextureNameUsesDefault(t *testing.T) {
	r := &RecordingRenderer{}
	params := DefaultRopeParams()
	params.Texture = ""

	_, err := NewRope(r, params)

	require.NoError(t, err)
	require.Len(t, r.Textures, 1)
	assert.Equal(t, DefaultTexture, r.Textures[0].name)
}

func TestBaseBody_CloseReleasesOnce(t *testing.T) {
	r := &RecordingRenderer{}
	rope, err := NewRope(r, DefaultRopeParams())
	require.NoError(t, err)

	rope.Close()
	rope.Close()

	assert.Equal(t, 1, r.Textures[0].released)
	assert.Nil(t, rope.Texture())

	// Drawing a closed body still draws its lines but skips the sprite.
	rope.Draw(r)
	assert.Len(t, r.Lines, 1)
	assert.Empty(t, r.Blits)
}

func TestDraw_SkipsDivergedPoints(t *testing.T) {
	r := &RecordingRenderer{}
	rope, err := NewRope(r, DefaultRopeParams())
	require.NoError(t, err)
	ms, err := NewMultispring(r, DefaultMultispringParams())
	require.NoError(t, err)

	rope.Tether.Position = physics.Vector2D{X: math.NaN(), Y: 10}
	rope.Draw(r)
	assert.Empty(t, r.Lines)
	assert.Empty(t, r.Blits)

	ms.Chain.Positions[2] = physics.Vector2D{X: math.Inf(1), Y: 0}
	ms.Draw(r)
	// Links 1-2 and 2-3 touch the diverged node.
	assert.Len(t, r.Lines, ms.Chain.Len()-3)
	assert.Len(t, r.Blits, 1)
}

func TestBody_Names(t *testing.T) {
	r := &RecordingRenderer{}
	rope, _ := NewRope(r, DefaultRopeParams())
	ms, _ := NewMultispring(r, DefaultMultispringParams())
	cr, _ := NewConstrainedRope(r, DefaultConstrainedParams())
	pl, _ := NewPlayer(r, DefaultPlayerParams())

	assert.Equal(t, "rope", rope.Name())
	assert.Equal(t, "multispring", ms.Name())
	assert.Equal(t, "constrained", cr.Name())
	assert.Equal(t, "player", pl.Name())
}

func TestBody_PointsAreCopies(t *testing.T) {
	r := &RecordingRenderer{}
	ms, err := NewMultispring(r, DefaultMultispringParams())
	require.NoError(t, err)

	points := ms.Points()
	points[0] = physics.Vector2D{X: -1, Y: -1}

	assert.NotEqual(t, points[0], ms.Chain.Positions[0])
}

func snapshotAt(x, y int) input.Snapshot {
	return input.Snapshot{PointerX: x, PointerY: y}
}
