// Package tty runs a game on a terminal: raw key bytes in, colored half
// blocks out. The same session serves a local terminal and an SSH channel.
package tty

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/loop"
	"github.com/tomz197/vectoroids/internal/sound"
)

// Options configures a Session.
type Options struct {
	Settings *config.Settings
	Sounds   *sound.Library
	Logger   *log.Logger

	// Style selects the color profile of the output.
	Style *lipgloss.Renderer

	// TermSize reports the terminal size in cells. It is polled every
	// frame so window changes are picked up.
	TermSize draw.TermSizeFunc

	// OnSound receives every sound the game plays. It may be nil.
	OnSound func(sound.ID)
}

// Session is one player on one terminal.
type Session struct {
	ctl      *loop.Controller
	r        *bufio.Reader
	w        io.Writer
	hold     time.Duration
	frame    time.Duration
	termSize draw.TermSizeFunc
	onSound  func(sound.ID)
	logger   *log.Logger
	renderer *draw.TerminalRenderer
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	termSize := opts.TermSize
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	ctl, err := loop.New(loop.Options{
		Settings: &settings,
		Sounds:   opts.Sounds,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		ctl:      ctl,
		r:        r,
		w:        w,
		hold:     settings.Terminal.KeyHold,
		frame:    settings.FrameTime(),
		termSize: termSize,
		onSound:  opts.OnSound,
		logger:   logger,
		renderer: draw.NewTerminalRenderer(w, opts.Style),
	}, nil
}

// Controller returns the session's game controller.
func (s *Session) Controller() *loop.Controller {
	return s.ctl
}

// Run plays until the player quits, the input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	cols, rows, err := s.termSize()
	if err != nil {
		s.ctl.Dispose()
		return err
	}
	draw.HideCursor(s.w)
	defer draw.ShowCursor(s.w)
	defer draw.ClearScreen(s.w)
	defer s.ctl.Dispose()

	if s.onSound != nil {
		defer s.ctl.OnSound(s.onSound)()
	}
	if err := s.ctl.Initialize(s.renderer, geom.Rect{Width: cols, Height: rows}); err != nil {
		return err
	}

	stream := input.StartStream(s.r, s.hold)
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.ctl.Exited():
			return nil
		case now := <-ticker.C:
			for _, ev := range stream.Poll(now) {
				if ev.Down {
					s.ctl.KeyDown(ev.Key)
				} else {
					s.ctl.KeyUp(ev.Key)
				}
			}
			if stream.Closed() {
				s.logger.Debug("input closed")
				return nil
			}

			if cols, rows, err := s.termSize(); err == nil {
				if rect := (geom.Rect{Width: cols, Height: rows}); rect != s.ctl.Rect() {
					s.ctl.Resize(rect)
				}
			}
		}
	}
}
