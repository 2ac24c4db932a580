package render

import (
	"fmt"
	"image/color"
)

// DefaultRamp orders characters from dark to bright.
const DefaultRamp = " .:-+*=%@#"

// CellAspect is the width of a terminal cell over its height.
const CellAspect = 0.5

// Effect converts the samples covering one cell into a character.
type Effect interface {
	Name() string
	// Samples returns the sub-cell resolution the effect consumes.
	Samples() (sx, sy int)
	// Shade folds row-major brightness samples in [0, 1] into a character.
	Shade(samples []float64) rune
}

// NewEffect builds an effect by name.
func NewEffect(name, ramp string, invert bool) (Effect, error) {
	switch name {
	case "", "ascii":
		return NewASCII(ramp, invert)
	case "braille":
		return Braille{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown effect %q", ErrEffect, name)
	}
}

// ASCII maps average cell brightness onto a character ramp.
type ASCII struct {
	ramp []rune
}

func NewASCII(ramp string, invert bool) (*ASCII, error) {
	if ramp == "" {
		ramp = DefaultRamp
	}
	r := []rune(ramp)
	if len(r) < 2 {
		return nil, fmt.Errorf("%w: ramp %q needs at least two characters", ErrEffect, ramp)
	}
	if invert {
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	return &ASCII{ramp: r}, nil
}

func (a *ASCII) Name() string           { return "ascii" }
func (a *ASCII) Samples() (int, int)    { return 2, 2 }
func (a *ASCII) Ramp() []rune           { return a.ramp }
func (a *ASCII) Shade(s []float64) rune { return a.ramp[rampIndex(average(s), len(a.ramp))] }

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille lights one dot per lit sample.
type Braille struct{}

func (Braille) Name() string        { return "braille" }
func (Braille) Samples() (int, int) { return 2, 4 }

func (Braille) Shade(s []float64) rune {
	r := rune(brailleBlank)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if i := y*2 + x; i < len(s) && s[i] > 0 {
				r |= pixelMap[y][x]
			}
		}
	}
	return r
}

// Luminance is the perceived brightness of c in [0, 1].
func Luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// shade keeps dark materials visible against the blank background.
func shade(c color.RGBA) float64 {
	return 0.25 + 0.75*Luminance(c)
}

func average(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

func rampIndex(b float64, n int) int {
	i := int(b*float64(n-1) + 0.5)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
