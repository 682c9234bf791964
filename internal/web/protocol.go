package web

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/loop"
)

// Message types. Every websocket message is a msgpack envelope {t, d}.
const (
	MsgInit   = "init"
	MsgFrame  = "frame"
	MsgSound  = "sound"
	MsgExit   = "exit"
	MsgDown   = "down"
	MsgUp     = "up"
	MsgResize = "resize"
)

// Envelope is an incoming message; D is decoded once T is known.
type Envelope struct {
	T string             `msgpack:"t"`
	D msgpack.RawMessage `msgpack:"d"`
}

type outEnvelope struct {
	T string `msgpack:"t"`
	D any    `msgpack:"d"`
}

// InitMsg tells the browser how to draw: canvas size, colors by index and
// the sound names it can fetch from /sounds.
type InitMsg struct {
	Width   int      `msgpack:"w"`
	Height  int      `msgpack:"h"`
	Palette []string `msgpack:"palette"`
	Sounds  []string `msgpack:"sounds"`
}

// FrameMsg is one frame. Lines are flat [color, x1, y1, x2, y2] groups;
// each polygon is [color, x1, y1, x2, y2, ...].
type FrameMsg struct {
	Seq      uint64  `msgpack:"seq"`
	Lines    []int   `msgpack:"lines"`
	Polygons [][]int `msgpack:"polys"`
}

// KeyMsg carries a key name for MsgDown and MsgUp.
type KeyMsg struct {
	Key string `msgpack:"k"`
}

// ResizeMsg carries the browser canvas size in pixels.
type ResizeMsg struct {
	Width  int `msgpack:"w"`
	Height int `msgpack:"h"`
}

// SoundMsg names a sound to play.
type SoundMsg struct {
	ID string `msgpack:"id"`
}

// ExitMsg reports the final score when the game ends.
type ExitMsg struct {
	Score int `msgpack:"score"`
	High  int `msgpack:"high"`
}

func encode(t string, d any) ([]byte, error) {
	return msgpack.Marshal(outEnvelope{T: t, D: d})
}

func newInitMsg(palette draw.Palette, sounds []string) InitMsg {
	colors := make([]string, len(draw.Colors))
	for i, c := range draw.Colors {
		colors[i] = palette.Hex(c)
	}
	return InitMsg{
		Width:   geom.CanvasWidth,
		Height:  geom.CanvasHeight,
		Palette: colors,
		Sounds:  sounds,
	}
}

func newFrameMsg(seq uint64, lines []draw.Line, polygons []draw.Polygon) FrameMsg {
	msg := FrameMsg{
		Seq:      seq,
		Lines:    make([]int, 0, len(lines)*5),
		Polygons: make([][]int, 0, len(polygons)),
	}
	for _, l := range lines {
		msg.Lines = append(msg.Lines, int(l.Color), l.P1.X, l.P1.Y, l.P2.X, l.P2.Y)
	}
	for _, p := range polygons {
		flat := make([]int, 0, 1+len(p.Points)*2)
		flat = append(flat, int(p.Color))
		for _, pt := range p.Points {
			flat = append(flat, pt.X, pt.Y)
		}
		msg.Polygons = append(msg.Polygons, flat)
	}
	return msg
}

// applyInput routes a decoded envelope to the controller. Unknown types and
// keys are ignored.
func applyInput(ctl *loop.Controller, env Envelope) error {
	switch env.T {
	case MsgDown, MsgUp:
		var km KeyMsg
		if err := msgpack.Unmarshal(env.D, &km); err != nil {
			return err
		}
		key, ok := input.ParseKey(km.Key)
		if !ok {
			return nil
		}
		if env.T == MsgDown {
			ctl.KeyDown(key)
		} else {
			ctl.KeyUp(key)
		}
	case MsgResize:
		var rm ResizeMsg
		if err := msgpack.Unmarshal(env.D, &rm); err != nil {
			return err
		}
		if rm.Width > 0 && rm.Height > 0 {
			ctl.Resize(geom.Rect{Width: rm.Width, Height: rm.Height})
		}
	}
	return nil
}
