package entity

import "image/color"

// LineColor is the colour used for every rope segment
var LineColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Texture is an image handle owned by the renderer that loaded it
type Texture interface {
	Width() int
	Height() int
	Release()
}

// Renderer draws bodies
type Renderer interface {
	// LoadTexture loads a named image; called once per body at construction.
	LoadTexture(name string) (Texture, error)
	// Blit draws tex at its native size with its top-left corner at (x, y).
	Blit(tex Texture, x, y int)
	DrawLine(x1, y1, x2, y2 int, c color.RGBA)
	Clear()
	Present()
}
