package export

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/asciikey/internal/render"
)

func frame(lines ...string) *render.Frame {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	return &render.Frame{Width: w, Height: len(lines), Lines: lines}
}

func TestRasterize(t *testing.T) {
	f := frame("  #  ", " @@@ ", "⣿    ")
	img, err := Rasterize(f, DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	cw, ch := CellSize()
	if b := img.Bounds(); b.Dx() != 5*cw || b.Dy() != 3*ch {
		t.Fatalf("unexpected bounds %v", b)
	}

	if got := img.RGBAAt(cw*4+3, ch/2); got != DefaultPalette.Background {
		t.Errorf("blank cell painted: %v", got)
	}
	if got := img.RGBAAt(1, 2*ch+1); got != DefaultPalette.Foreground {
		t.Errorf("braille dot missing: %v", got)
	}

	lit := 0
	for y := ch; y < 2*ch; y++ {
		for x := cw; x < 4*cw; x++ {
			if img.RGBAAt(x, y) == DefaultPalette.Foreground {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("glyphs were not drawn")
	}
}

func TestRasterizeNilFrame(t *testing.T) {
	if _, err := Rasterize(nil, DefaultPalette); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path, err := SavePNG(dir, "", frame("ab", "cd"), DefaultPalette)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != DefaultName {
		t.Errorf("expected %s, got %s", DefaultName, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	cw, ch := CellSize()
	if b := img.Bounds(); b.Dx() != 2*cw || b.Dy() != 2*ch {
		t.Errorf("unexpected size %v", b)
	}
}

func TestSavePNGWithoutFrame(t *testing.T) {
	dir := t.TempDir()
	if _, err := SavePNG(dir, "", nil, DefaultPalette); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultName)); !os.IsNotExist(err) {
		t.Error("no file should be written without a frame")
	}
}

func TestSavePNGRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	// a zero-area image cannot be encoded
	if _, err := SavePNG(dir, "", &render.Frame{}, DefaultPalette); err == nil {
		t.Fatal("expected an encode error")
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultName)); !os.IsNotExist(err) {
		t.Error("partial file left behind")
	}
}

func TestFrameToSVG(t *testing.T) {
	svg, err := FrameToSVG(frame("<#>", "⠁  "), DefaultPalette, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not an svg document")
	}
	if !strings.Contains(svg, "&lt;#&gt;") {
		t.Error("text row not escaped")
	}
	if strings.Count(svg, "<circle") != 1 {
		t.Errorf("expected one dot, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `fill="#32cd32"`) {
		t.Error("foreground colour missing")
	}
}

func TestEncodeGIF(t *testing.T) {
	var rec Recording
	a := frame("#.", ".#")
	rec.Capture(a)
	rec.Capture(a)
	rec.Capture(nil)
	rec.Capture(frame("###", "###", "###"))
	if rec.Len() != 2 {
		t.Fatalf("expected 2 captured frames, got %d", rec.Len())
	}

	var buf bytes.Buffer
	if err := EncodeGIF(context.Background(), &buf, rec.Frames(), DefaultPalette, 2); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}
	cw, ch := CellSize()
	if anim.Config.Width != 3*cw || anim.Config.Height != 3*ch {
		t.Errorf("unexpected screen %dx%d", anim.Config.Width, anim.Config.Height)
	}
}

func TestEncodeGIFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGIF(context.Background(), &buf, nil, DefaultPalette, 2); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
