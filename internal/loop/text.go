package loop

import (
	"strings"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
)

// Stroke font on a 4x6 grid, y down. Each glyph is a set of polylines
// separated by "|"; each point is two digits "xy".
var glyphs = map[rune]string{
	'A': "06 02 20 42 46 | 03 43",
	'B': "06 00 30 41 42 33 03 | 33 44 45 36 06",
	'C': "40 00 06 46",
	'D': "00 30 42 44 36 06 00",
	'E': "40 00 06 46 | 03 33",
	'F': "40 00 06 | 03 33",
	'G': "40 00 06 46 43 23",
	'H': "00 06 | 40 46 | 03 43",
	'I': "00 40 | 20 26 | 06 46",
	'J': "40 45 36 16 05",
	'K': "00 06 | 40 03 46",
	'L': "00 06 46",
	'M': "06 00 23 40 46",
	'N': "06 00 46 40",
	'O': "00 40 46 06 00",
	'P': "06 00 40 43 03",
	'Q': "00 40 44 26 06 00 | 24 46",
	'R': "06 00 40 43 03 46",
	'S': "40 00 03 43 46 06",
	'T': "00 40 | 20 26",
	'U': "00 06 46 40",
	'V': "00 26 40",
	'W': "00 06 23 46 40",
	'X': "00 46 | 40 06",
	'Y': "00 23 40 | 23 26",
	'Z': "00 40 06 46",
	'0': "00 40 46 06 00 | 06 40",
	'1': "10 20 26 | 16 36",
	'2': "00 40 43 03 06 46",
	'3': "00 40 46 06 | 03 43",
	'4': "00 03 43 | 40 46",
	'5': "40 00 03 43 46 06",
	'6': "40 00 06 46 43 03",
	'7': "00 40 46",
	'8': "00 40 46 06 00 | 03 43",
	'9': "43 03 00 40 46 06",
	'-': "03 43",
	':': "21 22 | 24 25",
	'.': "25 26",
}

const (
	glyphWidth   = 4
	glyphHeight  = 6
	glyphAdvance = 6
)

// textWidth returns the canvas width of s drawn at scale.
func textWidth(s string, scale int) int {
	n := len([]rune(s))
	if n == 0 {
		return 0
	}
	return ((n-1)*glyphAdvance + glyphWidth) * scale
}

// addText appends s as line segments with its top-left corner at origin.
// Unknown characters render as blanks.
func addText(lines []draw.Line, c draw.Color, s string, origin geom.Point, scale int) []draw.Line {
	x := origin.X
	for _, r := range strings.ToUpper(s) {
		if strokes, ok := glyphs[r]; ok {
			lines = appendGlyph(lines, c, strokes, geom.Point{X: x, Y: origin.Y}, scale)
		}
		x += glyphAdvance * scale
	}
	return lines
}

func appendGlyph(lines []draw.Line, c draw.Color, strokes string, at geom.Point, scale int) []draw.Line {
	for _, stroke := range strings.Split(strokes, "|") {
		var prev geom.Point
		for i, pt := range strings.Fields(stroke) {
			p := geom.Point{
				X: at.X + int(pt[0]-'0')*scale,
				Y: at.Y + int(pt[1]-'0')*scale,
			}
			if i > 0 {
				lines = append(lines, draw.Line{Color: c, P1: prev, P2: p})
			}
			prev = p
		}
	}
	return lines
}
