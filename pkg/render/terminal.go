package render

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-tether/pkg/assets"
	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/logging"
)

// Default pixel size of one terminal cell
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Background is the colour the screen is cleared to
var Background = tcell.NewRGBColor(10, 10, 10)

const spriteGlyph = '█'

type cellTexture struct {
	width, height int
	color         tcell.Color
}

func (t *cellTexture) Width() int  { return t.width }
func (t *cellTexture) Height() int { return t.height }
func (t *cellTexture) Release()    {}

// TerminalRenderer draws the pixel-space scene onto a tcell screen, one cell
// per CellWidth x CellHeight block of pixels.
type TerminalRenderer struct {
	screen     tcell.Screen
	cellWidth  int
	cellHeight int
	background tcell.Style
	logger     *logging.Logger
}

// NewTerminalRenderer wraps an initialised screen. Non-positive cell sizes
// select the defaults.
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight int, logger *logging.Logger) *TerminalRenderer {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &TerminalRenderer{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		background: tcell.StyleDefault.Background(Background),
		logger:     logger.Component("terminal"),
	}
}

// ToCell converts a pixel position to the cell containing it
func (r *TerminalRenderer) ToCell(x, y int) (int, int) {
	return floorDiv(x, r.cellWidth), floorDiv(y, r.cellHeight)
}

// ToPixel converts a cell to the pixel at its centre
func (r *TerminalRenderer) ToPixel(cx, cy int) (int, int) {
	return cx*r.cellWidth + r.cellWidth/2, cy*r.cellHeight + r.cellHeight/2
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// LoadTexture implements entity.Renderer. A texture is drawn as solid cells
// in the average colour of its opaque pixels.
func (r *TerminalRenderer) LoadTexture(name string) (entity.Texture, error) {
	img, err := assets.Decode(name)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()

	var sr, sg, sb, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			sr += uint64(cr >> 8)
			sg += uint64(cg >> 8)
			sb += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("texture %q is fully transparent", name)
	}

	tex := &cellTexture{
		width:  b.Dx(),
		height: b.Dy(),
		color:  tcell.NewRGBColor(int32(sr/n), int32(sg/n), int32(sb/n)),
	}
	r.logger.Debug(context.Background(), "texture loaded", "texture", name, "width", tex.width, "height", tex.height)
	return tex, nil
}

// Blit implements entity.Renderer
func (r *TerminalRenderer) Blit(tex entity.Texture, x, y int) {
	t, ok := tex.(*cellTexture)
	if !ok {
		return
	}
	style := r.background.Foreground(t.color)
	cx0, cy0 := r.ToCell(x, y)
	cx1, cy1 := r.ToCell(x+t.width-1, y+t.height-1)
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			r.set(cx, cy, spriteGlyph, style)
		}
	}
}

// DrawLine implements entity.Renderer. The line is clipped to the screen and
// rasterised in cell space, so far off-screen endpoints cost nothing.
func (r *TerminalRenderer) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	style := r.background.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))

	fx1, fy1 := float64(x1)/float64(r.cellWidth), float64(y1)/float64(r.cellHeight)
	fx2, fy2 := float64(x2)/float64(r.cellWidth), float64(y2)/float64(r.cellHeight)
	glyph := lineGlyph(slope(math.Floor(fx2)-math.Floor(fx1), math.Floor(fy2)-math.Floor(fy1)))

	w, h := r.screen.Size()
	fx1, fy1, fx2, fy2, ok := clipSegment(fx1, fy1, fx2, fy2, float64(w), float64(h))
	if !ok {
		return
	}
	cx1, cy1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	cx2, cy2 := int(math.Floor(fx2)), int(math.Floor(fy2))

	dx, sx := abs(cx2-cx1), sign(cx2-cx1)
	dy, sy := -abs(cy2-cy1), sign(cy2-cy1)
	e := dx + dy
	for {
		r.set(cx1, cy1, glyph, style)
		if cx1 == cx2 && cy1 == cy2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			cx1 += sx
		}
		if e2 <= dx {
			e += dx
			cy1 += sy
		}
	}
}

// maxSlopeStep bounds the deltas handed to lineGlyph
const maxSlopeStep = 1 << 20

// slope reduces a cell delta to integers no larger than maxSlopeStep while
// keeping its direction.
func slope(dx, dy float64) (int, int) {
	m := math.Max(math.Abs(dx), math.Abs(dy))
	if m > maxSlopeStep {
		dx, dy = dx/m*maxSlopeStep, dy/m*maxSlopeStep
	}
	return int(math.Round(dx)), int(math.Round(dy))
}

// clipSegment clips a segment to the rectangle [0,w]x[0,h] with the
// Liang-Barsky parametric test. ok is false when nothing is left.
func clipSegment(x1, y1, x2, y2, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1},
		{dx, w - x1},
		{-dy, y1},
		{dy, h - y1},
	}
	for _, edge := range edges {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// lineGlyph picks a character that follows the line's slope. Cells are
// about twice as tall as wide, so dy is doubled before comparing.
func lineGlyph(dx, dy int) rune {
	ax, ay := abs(dx), abs(2*dy)
	switch {
	case ax == 0 && ay == 0:
		return '·'
	case ay <= ax/2:
		return '─'
	case ax <= ay/2:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (r *TerminalRenderer) set(cx, cy int, glyph rune, style tcell.Style) {
	w, h := r.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	r.screen.SetContent(cx, cy, glyph, nil, style)
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Fill(' ', r.background)
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
