package draw

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color names one entry of the palette.
type Color int

const (
	White Color = iota
	Red
	Yellow
	Orange
)

// Colors lists every palette entry in order.
var Colors = []Color{White, Red, Yellow, Orange}

// String returns the lower-case color name used in settings files.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// ErrMissingColor is returned when a palette lacks an entry.
var ErrMissingColor = errors.New("draw: missing palette color")

// Palette maps every Color to its RGBA value.
type Palette map[Color]color.RGBA

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		White:  {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Red:    {R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		Yellow: {R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF},
		Orange: {R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF},
	}
}

// ParsePalette builds a palette from color name to hex string entries.
// Every color must be present and well formed.
func ParsePalette(entries map[string]string) (Palette, error) {
	p := make(Palette, len(Colors))
	for _, c := range Colors {
		hex, ok := entries[c.String()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColor, c)
		}
		parsed, err := colorful.Hex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", c, err)
		}
		r, g, b := parsed.RGB255()
		p[c] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return p, nil
}

// Validate checks that every color has an entry.
func (p Palette) Validate() error {
	for _, c := range Colors {
		if _, ok := p[c]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColor, c)
		}
	}
	return nil
}

// Hex returns the #RRGGBB form of c.
func (p Palette) Hex(c Color) string {
	rgba := p[c]
	return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
}

// Clone returns an independent copy of p.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for c, v := range p {
		out[c] = v
	}
	return out
}
