package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/asciikey/internal/render"
)

// PNG encodes f losslessly to w.
func PNG(w io.Writer, f *render.Frame, p Palette) error {
	img, err := Rasterize(f, p)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes f to dir/name and returns the path. Nothing is written
// when f is nil.
func SavePNG(dir, name string, f *render.Frame, p Palette) (string, error) {
	if f == nil {
		return "", ErrNoFrame
	}
	if name == "" {
		name = DefaultName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := PNG(out, f, p); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("export: encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
