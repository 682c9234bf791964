package draw

import (
	"errors"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/tomz197/vectoroids/internal/geom"
)

// PNGRenderer rasterizes frames into an in-memory image.
type PNGRenderer struct {
	mu      sync.Mutex
	width   int
	height  int
	palette Palette
	dc      *gg.Context
	frames  int
}

// NewPNGRenderer creates a renderer producing width x height images.
func NewPNGRenderer(width, height int) *PNGRenderer {
	return &PNGRenderer{width: max(width, 1), height: max(height, 1)}
}

// Initialize implements Renderer.
func (r *PNGRenderer) Initialize(palette Palette) error {
	if err := palette.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette = palette.Clone()
	return nil
}

// Resize changes the output image size.
func (r *PNGRenderer) Resize(rect geom.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = max(rect.Width, 1)
	r.height = max(rect.Height, 1)
}

// Draw implements Renderer.
func (r *PNGRenderer) Draw(lines []Line, polygons []Polygon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(color.Black)
	dc.Clear()

	sx := float64(r.width) / geom.CanvasWidth
	sy := float64(r.height) / geom.CanvasHeight
	dc.SetLineWidth(max(1, float64(r.width)/640))

	for _, l := range lines {
		dc.SetColor(r.palette[l.Color])
		dc.DrawLine(float64(l.P1.X)*sx, float64(l.P1.Y)*sy, float64(l.P2.X)*sx, float64(l.P2.Y)*sy)
		dc.Stroke()
	}
	for _, p := range polygons {
		if len(p.Points) == 0 {
			continue
		}
		dc.SetColor(r.palette[p.Color])
		if len(p.Points) == 1 {
			dc.DrawPoint(float64(p.Points[0].X)*sx, float64(p.Points[0].Y)*sy, 1)
			dc.Fill()
			continue
		}
		dc.MoveTo(float64(p.Points[0].X)*sx, float64(p.Points[0].Y)*sy)
		for _, pt := range p.Points[1:] {
			dc.LineTo(float64(pt.X)*sx, float64(pt.Y)*sy)
		}
		dc.ClosePath()
		dc.Stroke()
	}

	r.dc = dc
	r.frames++
	return nil
}

// Frames returns how many frames have been drawn.
func (r *PNGRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Image returns the last drawn frame, or nil before the first one.
func (r *PNGRenderer) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// EncodePNG writes the last drawn frame to w.
func (r *PNGRenderer) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dc == nil {
		return errors.New("draw: no frame drawn yet")
	}
	return r.dc.EncodePNG(w)
}
