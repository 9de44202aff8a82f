// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-tether/pkg/assets"
	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/logging"
)

type nullTexture struct {
	name          string
	width, height int
	released      bool
}

func (t *nullTexture) Width() int  { return t.width }
func (t *nullTexture) Height() int { return t.height }
func (t *nullTexture) Release()    { t.released = true }

// NullRenderer is an entity.Renderer that draws nothing and logs every call
// at debug level. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger.Component("render"),
	}
}

// LoadTexture implements entity.Renderer. Only the texture's size is read.
func (d *NullRenderer) LoadTexture(name string) (entity.Texture, error) {
	w, h, err := assets.Size(name)
	if err != nil {
		return nil, err
	}
	d.logger.Debug(context.Background(), "LoadTexture called",
		"texture", name,
		"width", w,
		"height", h,
	)
	return &nullTexture{name: name, width: w, height: h}, nil
}

// Blit implements entity.Renderer.
func (d *NullRenderer) Blit(tex entity.Texture, x, y int) {
	name := ""
	if t, ok := tex.(*nullTexture); ok {
		name = t.name
	}
	d.logger.Debug(context.Background(), "Blit called", "texture", name, "x", x, "y", y)
}

// DrawLine implements entity.Renderer.
func (d *NullRenderer) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	d.logger.Debug(context.Background(), "DrawLine called",
		"x1", x1, "y1", y1,
		"x2", x2, "y2", y2,
	)
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}
