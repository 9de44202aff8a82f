// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-tether/pkg/assets"
)

// fontURL is the name the HUD font is registered under with engo.Files
const fontURL = "goregular.ttf"

// Texture is an entity.Texture backed by an engo drawable
type Texture struct {
	drawable common.Drawable
	width    int
	height   int
	release  func()
}

// Width implements entity.Texture
func (t *Texture) Width() int { return t.width }

// Height implements entity.Texture
func (t *Texture) Height() int { return t.height }

// Release implements entity.Texture
func (t *Texture) Release() {
	if t.release != nil {
		t.release()
		t.release = nil
	}
}

// AssetManager uploads textures once and shares them between bodies
type AssetManager struct {
	textures map[string]*Texture
	refs     map[string]int
	pixel    common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		textures: make(map[string]*Texture),
		refs:     make(map[string]int),
	}
}

// Texture returns the uploaded texture for name, loading it on first use.
// Requires a GL context.
func (am *AssetManager) Texture(name string) (*Texture, error) {
	shared, ok := am.textures[name]
	if !ok {
		img, err := assets.Decode(name)
		if err != nil {
			return nil, err
		}
		nrgba := toNRGBA(img)
		shared = &Texture{
			drawable: common.NewTextureSingle(common.NewImageObject(nrgba)),
			width:    nrgba.Bounds().Dx(),
			height:   nrgba.Bounds().Dy(),
		}
		am.textures[name] = shared
	}
	am.refs[name]++

	return &Texture{
		drawable: shared.drawable,
		width:    shared.width,
		height:   shared.height,
		release:  func() { am.unref(name) },
	}, nil
}

func (am *AssetManager) unref(name string) {
	am.refs[name]--
	if am.refs[name] > 0 {
		return
	}
	if t, ok := am.textures[name].drawable.(common.Texture); ok {
		t.Close()
	}
	delete(am.textures, name)
	delete(am.refs, name)
}

// Loaded returns how many distinct textures are resident
func (am *AssetManager) Loaded() int {
	return len(am.textures)
}

// Pixel returns a 1x1 white drawable. Lines are drawn by stretching it.
func (am *AssetManager) Pixel() common.Drawable {
	if am.pixel == nil {
		img := createBaseImage(1, 1)
		img.Set(0, 0, color.NRGBA{255, 255, 255, 255})
		am.pixel = common.NewTextureSingle(common.NewImageObject(img))
	}
	return am.pixel
}

// LoadFont registers the bundled HUD font with engo.Files
func (am *AssetManager) LoadFont(size float64, fg color.Color) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	font := &common.Font{
		URL:  fontURL,
		FG:   fg,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("create font: %w", err)
	}
	return font, nil
}

// createBaseImage creates a transparent image with the specified dimensions.
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return img
}

// toNRGBA converts any decoded image to a zero-origin NRGBA image, the only
// layout engo uploads directly.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := createBaseImage(b.Dx(), b.Dy())
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
