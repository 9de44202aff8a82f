package assets

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesIncludesDefault(t *testing.T) {
	assert.Contains(t, Names(), "yellow.png")
}

func TestBundledTexture(t *testing.T) {
	w, h, err := Size("yellow.png")
	require.NoError(t, err)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)

	img, err := Decode("yellow.png")
	require.NoError(t, err)
	r, g, b, a := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(220*0x101), g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestMissingTexture(t *testing.T) {
	_, err := Read("missing.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDiskOverridesBundled(t *testing.T) {
	p := filepath.Join(t.TempDir(), "red.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	w, h, err := Size(p)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
}

func TestUndecodableTexture(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(p, []byte("not a png"), 0o644))

	_, _, err := Size(p)
	assert.Error(t, err)
}
