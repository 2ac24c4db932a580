package render

import (
	"image"
	"strings"
)

// Surface is the shared character grid every viewport renders into.
type Surface struct {
	width, height int
	blank         rune
	cells         [][]rune
}

func NewSurface(w, h int, blank rune) *Surface {
	s := &Surface{blank: blank}
	s.Resize(w, h)
	return s
}

// Resize reallocates the grid; previous content is discarded.
func (s *Surface) Resize(w, h int) {
	s.width, s.height = max(w, 0), max(h, 0)
	s.cells = make([][]rune, s.height)
	for i := range s.cells {
		s.cells[i] = make([]rune, s.width)
	}
	s.Clear()
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Clear resets every cell to blank.
func (s *Surface) Clear() { s.fill(s.Bounds(), s.blank) }

func (s *Surface) fill(r image.Rectangle, c rune) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.cells[y][x] = c
		}
	}
}

// At returns the character at cell (x, y), or blank outside the grid.
func (s *Surface) At(x, y int) rune {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return s.blank
	}
	return s.cells[y][x]
}

func (s *Surface) set(x, y int, c rune) {
	if x >= 0 && y >= 0 && x < s.width && y < s.height {
		s.cells[y][x] = c
	}
}

func (s *Surface) Lines() []string {
	lines := make([]string, s.height)
	for i, row := range s.cells {
		lines[i] = string(row)
	}
	return lines
}

func (s *Surface) String() string {
	var b strings.Builder
	for _, row := range s.cells {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Snapshot copies the grid into an immutable frame.
func (s *Surface) Snapshot() *Frame {
	return &Frame{Width: s.width, Height: s.height, Lines: s.Lines()}
}

// Frame is a presented, read-only copy of the surface.
type Frame struct {
	Width, Height int
	Lines         []string
}

func (f *Frame) String() string {
	return strings.Join(f.Lines, "\n") + "\n"
}
