package tty

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/loop"
)

// syncBuffer is a bytes.Buffer safe for the renderer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func fixedSize(cols, rows int) func() (int, int, error) {
	return func() (int, int, error) { return cols, rows, nil }
}

func newTestSession(t *testing.T, r io.Reader, w io.Writer) *Session {
	t.Helper()
	s, err := NewSession(bufio.NewReader(r), w, Options{
		Logger:   log.New(io.Discard),
		TermSize: fixedSize(80, 24),
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func runAsync(s *Session, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestSessionQuitFromTitle(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &syncBuffer{}
	s := newTestSession(t, pr, out)

	done := runAsync(s, context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for s.Controller().Status() != loop.ModeTitle {
		if time.Now().After(deadline) {
			t.Fatal("session never reached title")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}

	waitRun(t, done)
	if s.Controller().Status() != loop.ModeExit {
		t.Errorf("Status() = %v, expected exit", s.Controller().Status())
	}
	if !strings.Contains(out.String(), "\033[?25l") {
		t.Error("cursor was not hidden")
	}
}

func TestSessionStartsGame(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := newTestSession(t, pr, &syncBuffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)

	deadline := time.Now().Add(2 * time.Second)
	for s.Controller().Status() != loop.ModeTitle {
		if time.Now().After(deadline) {
			t.Fatal("session never reached title")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := pw.Write([]byte(" ")); err != nil {
		t.Fatal(err)
	}
	for s.Controller().Status() != loop.ModeGame {
		if time.Now().After(deadline) {
			t.Fatal("space did not start a game")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	waitRun(t, done)
}

func TestSessionEndsWithInput(t *testing.T) {
	s := newTestSession(t, strings.NewReader(""), &syncBuffer{})

	waitRun(t, runAsync(s, context.Background()))
}

func TestSessionTermSizeError(t *testing.T) {
	boom := errors.New("not a terminal")
	s, err := NewSession(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		Logger:   log.New(io.Discard),
		TermSize: func() (int, int, error) { return 0, 0, boom },
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, expected %v", err, boom)
	}
}

func TestSessionFollowsResize(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var mu sync.Mutex
	cols, rows := 80, 24
	s, err := NewSession(bufio.NewReader(pr), &syncBuffer{}, Options{
		Logger: log.New(io.Discard),
		TermSize: func() (int, int, error) {
			mu.Lock()
			defer mu.Unlock()
			return cols, rows, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)

	deadline := time.Now().Add(2 * time.Second)
	for s.Controller().Status() != loop.ModeTitle {
		if time.Now().After(deadline) {
			t.Fatal("session never reached title")
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	cols, rows = 120, 40
	mu.Unlock()
	for rect := s.Controller().Rect(); rect.Width != 120 || rect.Height != 40; rect = s.Controller().Rect() {
		if time.Now().After(deadline) {
			t.Fatalf("Rect() = %v, expected 120x40", rect)
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	waitRun(t, done)
}
