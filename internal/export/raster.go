// Package export writes presented frames to image files.
package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/asciikey/internal/render"
)

var (
	ErrNoFrame  = errors.New("export: no frame has been presented")
	ErrNoFrames = errors.New("export: nothing recorded")
)

// DefaultName is the file name used for still exports.
const DefaultName = "scene.png"

// Palette is the two-colour scheme a frame is drawn with.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// Lime on black.
var DefaultPalette = Palette{
	Foreground: color.RGBA{0x32, 0xcd, 0x32, 0xff},
	Background: color.RGBA{0x00, 0x00, 0x00, 0xff},
}

var face = basicfont.Face7x13

// CellSize is the pixel size of one character cell.
func CellSize() (int, int) {
	return face.Advance, face.Height
}

const (
	brailleBase = 0x2800
	brailleLast = 0x28ff
)

var brailleDots = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Rasterize draws f into a new image, one font cell per character.
// Braille cells are drawn as dot blocks since the bitmap font has no such glyphs.
func Rasterize(f *render.Frame, p Palette) (*image.RGBA, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	cw, ch := CellSize()
	return rasterizeInto(f, p, image.Rect(0, 0, f.Width*cw, f.Height*ch)), nil
}

func rasterizeInto(f *render.Frame, p Palette, bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(p.Background), image.Point{}, draw.Src)

	cw, ch := CellSize()
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(p.Foreground),
		Face: face,
	}
	for row, line := range f.Lines {
		for col, r := range []rune(line) {
			x, y := col*cw, row*ch
			switch {
			case r == ' ' || r == brailleBase:
			case r > brailleBase && r <= brailleLast:
				drawBraille(img, int(r-brailleBase), x, y, p.Foreground)
			default:
				d.Dot = fixed.P(x, y+ascent)
				d.DrawString(string(r))
			}
		}
	}
	return img
}

func drawBraille(img *image.RGBA, pattern, x, y int, c color.RGBA) {
	cw, ch := CellSize()
	dotW, dotH := cw/2, ch/4
	for dy := range 4 {
		for dx := range 2 {
			if pattern&brailleDots[dy][dx] == 0 {
				continue
			}
			r := image.Rect(x+dx*dotW, y+dy*dotH, x+(dx+1)*dotW-1, y+(dy+1)*dotH-1)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
}
