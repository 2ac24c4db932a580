package export

import (
	"fmt"
	"html"
	"image/color"
	"strings"

	"github.com/san-kum/asciikey/internal/render"
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FrameToSVG converts a frame to SVG. Text cells become monospace glyphs
// and braille cells become dots, scale pixels per braille dot.
func FrameToSVG(f *render.Frame, p Palette, scale float64) (string, error) {
	if f == nil {
		return "", ErrNoFrame
	}

	cellW, cellH := scale*2, scale*4
	width := float64(f.Width) * cellW
	height := float64(f.Height) * cellH

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.1f">
`, width, height, width, height, hex(p.Background), hex(p.Foreground), cellH)

	dotRadius := scale * 0.4
	for row, line := range f.Lines {
		baseY := float64(row) * cellH
		var text strings.Builder
		for col, r := range []rune(line) {
			baseX := float64(col) * cellW
			if r < brailleBase || r > brailleLast {
				text.WriteRune(r)
				continue
			}
			text.WriteRune(' ')
			pattern := int(r - brailleBase)
			for dy := range 4 {
				for dx := range 2 {
					if pattern&brailleDots[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
				}
			}
		}
		if s := text.String(); strings.TrimSpace(s) != "" {
			fmt.Fprintf(&sb, "<text x=\"0\" y=\"%.1f\" textLength=\"%.0f\" xml:space=\"preserve\">%s</text>\n",
				baseY+cellH*0.8, width, html.EscapeString(s))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}
