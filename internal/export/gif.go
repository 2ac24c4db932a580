package export

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/asciikey/internal/render"
)

// Recording collects presented frames for an animated export.
type Recording struct {
	frames []*render.Frame
	last   *render.Frame
}

// Capture appends f unless it is nil or the frame already captured last.
func (r *Recording) Capture(f *render.Frame) {
	if f == nil || f == r.last {
		return
	}
	r.frames = append(r.frames, f)
	r.last = f
}

func (r *Recording) Len() int { return len(r.frames) }

func (r *Recording) Frames() []*render.Frame { return r.frames }

// EncodeGIF writes frames as a looping GIF with delay hundredths of a second
// between frames. Frames are rasterised concurrently; frames smaller than
// the largest one are padded with the background.
func EncodeGIF(ctx context.Context, w io.Writer, frames []*render.Frame, p Palette, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	cw, ch := CellSize()
	var bounds image.Rectangle
	for _, f := range frames {
		if f == nil {
			return ErrNoFrame
		}
		bounds = bounds.Union(image.Rect(0, 0, f.Width*cw, f.Height*ch))
	}

	pal := color.Palette{p.Background, p.Foreground}
	images := make([]*image.Paletted, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rgba := rasterizeInto(f, p, bounds)
			img := image.NewPaletted(bounds, pal)
			draw.Draw(img, bounds, rgba, image.Point{}, draw.Src)
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	anim := gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		LoopCount: 0,
		Config:    image.Config{ColorModel: pal, Width: bounds.Dx(), Height: bounds.Dy()},
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}
	return gif.EncodeAll(w, &anim)
}
