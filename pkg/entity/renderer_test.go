package entity

import (
	"errors"
	"image/color"
)

// fakeTexture is a texture handle that counts releases
type fakeTexture struct {
	name     string
	w, h     int
	released int
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Release()    { t.released++ }

// BlitCall captures the parameters of a Blit call
type BlitCall struct {
	Texture Texture
	X, Y    int
}

// LineCall captures the parameters of a DrawLine call
type LineCall struct {
	X1, Y1, X2, Y2 int
	Color          color.RGBA
}

// RecordingRenderer is a test implementation of Renderer that records every call
type RecordingRenderer struct {
	Textures     []*fakeTexture
	Blits        []BlitCall
	Lines        []LineCall
	ClearCount   int
	PresentCount int
	// LoadErr, when set, is returned by LoadTexture.
	LoadErr error
}

func (m *RecordingRenderer) LoadTexture(name string) (Texture, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	tex := &fakeTexture{name: name, w: 16, h: 16}
	m.Textures = append(m.Textures, tex)
	return tex, nil
}

func (m *RecordingRenderer) Blit(tex Texture, x, y int) {
	m.Blits = append(m.Blits, BlitCall{Texture: tex, X: x, Y: y})
}

func (m *RecordingRenderer) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	m.Lines = append(m.Lines, LineCall{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c})
}

func (m *RecordingRenderer) Clear()   { m.ClearCount++ }
func (m *RecordingRenderer) Present() { m.PresentCount++ }

var (
	_ Renderer = (*RecordingRenderer)(nil)

	errNoTexture = errors.New("texture not found")
)
