package draw

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/vectoroids/internal/geom"
)

// TerminalRenderer paints frames onto a terminal with colored half blocks.
type TerminalRenderer struct {
	mu      sync.Mutex
	out     *ChunkWriter
	canvas  *Canvas
	style   *lipgloss.Renderer
	palette Palette
	glyphs  map[uint16]string
}

// NewTerminalRenderer creates a renderer writing to w. style decides the
// color profile; pass lipgloss.NewRenderer(w) for a remote session.
func NewTerminalRenderer(w io.Writer, style *lipgloss.Renderer) *TerminalRenderer {
	if style == nil {
		style = lipgloss.DefaultRenderer()
	}
	return &TerminalRenderer{
		out:    NewChunkWriter(w),
		canvas: NewScaledCanvas(80, 24, geom.CanvasWidth, geom.CanvasHeight),
		style:  style,
		glyphs: make(map[uint16]string),
	}
}

// Initialize implements Renderer.
func (r *TerminalRenderer) Initialize(palette Palette) error {
	if err := palette.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette = palette.Clone()
	clear(r.glyphs)
	return nil
}

// Resize fits the canvas into a terminal of rect.Width columns and
// rect.Height rows.
func (r *TerminalRenderer) Resize(rect geom.Rect) {
	width, height, offCol, offRow := FitCanvas(rect.Width, rect.Height)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas.Resize(width, height)
	r.canvas.SetOffset(offCol, offRow)
}

// Draw implements Renderer.
func (r *TerminalRenderer) Draw(lines []Line, polygons []Polygon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.canvas.Clear()
	for _, l := range lines {
		r.canvas.DrawLine(l.P1, l.P2, l.Color)
	}
	for _, p := range polygons {
		r.canvas.DrawPolygon(p.Points, p.Color)
	}

	ClearScreen(r.out)
	if err := r.canvas.RenderBorder(r.out); err != nil {
		return err
	}
	if err := r.canvas.Render(r.out, r.glyph); err != nil {
		return err
	}
	return r.out.Flush()
}

// glyph returns the styled half block for a cell, caching each combination.
func (r *TerminalRenderer) glyph(top, bottom uint8) string {
	key := uint16(top)<<8 | uint16(bottom)
	if g, ok := r.glyphs[key]; ok {
		return g
	}

	fg := func(v uint8) lipgloss.Color {
		return lipgloss.Color(r.palette.Hex(Color(v - 1)))
	}

	var g string
	switch {
	case top == bottom:
		g = r.style.NewStyle().Foreground(fg(top)).Render(string(BlockFull))
	case bottom == 0:
		g = r.style.NewStyle().Foreground(fg(top)).Render(string(BlockUpperHalf))
	case top == 0:
		g = r.style.NewStyle().Foreground(fg(bottom)).Render(string(BlockLowerHalf))
	default:
		g = r.style.NewStyle().Foreground(fg(top)).Background(fg(bottom)).Render(string(BlockUpperHalf))
	}
	r.glyphs[key] = g
	return g
}
