package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tomz197/vectoroids/internal/geom"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It scales from the logical canvas to terminal cells and remembers the
// palette index of every sub-pixel.
type Canvas struct {
	termWidth      int     // Terminal columns used by the canvas
	termHeight     int     // Terminal rows used by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x] - 0 when empty, else Color+1

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint8, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = uint8(col) + 1
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 geom.Point, col Color) {
	x1 := int(math.Round(float64(p1.X) * c.scaleX))
	y1 := int(math.Round(float64(p1.Y) * c.scaleY))
	x2 := int(math.Round(float64(p2.X) * c.scaleX))
	y2 := int(math.Round(float64(p2.Y) * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed outline. A single point is plotted as a dot.
func (c *Canvas) DrawPolygon(points []geom.Point, col Color) {
	n := len(points)
	switch n {
	case 0:
		return
	case 1:
		c.DrawLine(points[0], points[0], col)
		return
	}
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// Cell returns the stored colors of the sub-pixels behind terminal cell
// (col, row). Zero means empty, otherwise Color+1.
func (c *Canvas) Cell(col, row int) (top, bottom uint8) {
	topY := row * 2
	bottomY := topY + 1
	top = c.pixels[topY*c.termWidth+col]
	if bottomY < c.subPixelHeight {
		bottom = c.pixels[bottomY*c.termWidth+col]
	}
	return top, bottom
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer. glyph turns a cell's pair of
// sub-pixel values into the styled text to print; empty cells are skipped.
func (c *Canvas) Render(w io.Writer, glyph func(top, bottom uint8) string) error {
	// Reset and pre-grow buffer for better performance
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12) // Estimate ~12 bytes per cell

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			top, bottom := c.Cell(col, row)
			if top == 0 && bottom == 0 {
				continue // Skip empty cells
			}
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s", row+1+c.offsetRow, col+1+c.offsetCol, glyph(top, bottom))
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the canvas on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12) // Estimate buffer size

	if hasV {
		if hasH {
			// Full top and bottom: ┌───┐ └───┘
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		// Side borders: │ ... │
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FitCanvas picks the largest area of a cols x rows terminal that keeps the
// logical canvas aspect ratio, reserving one cell on each side for a border
// when there is room. It returns the canvas size and its centering offset.
func FitCanvas(cols, rows int) (width, height, offsetCol, offsetRow int) {
	cols = max(cols, 1)
	rows = max(rows, 1)

	// sub-pixels are roughly square: one column by half a row
	aspect := float64(geom.CanvasWidth) / float64(geom.CanvasHeight)
	width = cols
	height = int(math.Ceil(float64(width) / aspect / 2))
	if height > rows {
		height = rows
		width = int(float64(height*2) * aspect)
	}
	width = max(min(width, cols), 1)
	height = max(min(height, rows), 1)

	offsetCol = (cols - width) / 2
	offsetRow = (rows - height) / 2
	return width, height, offsetCol, offsetRow
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
