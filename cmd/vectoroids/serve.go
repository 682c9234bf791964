package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/sound"
	"github.com/tomz197/vectoroids/internal/tty"
)

const (
	defaultSSHHost     = "::"
	defaultSSHPort     = "2222"
	defaultHostKeyPath = ".ssh/vectoroids_host_key"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server. Every connection plays its own game.

Defaults come from SSH_HOST, SSH_PORT and SSH_HOST_KEY when set.

Examples:
  vectoroids serve
  vectoroids serve --addr :2222 --host-key ./host_key

Players connect with:
  ssh -t localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultSSHHost), config.GetEnv("SSH_PORT", defaultSSHPort))
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", addr, "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath), "Path to the host key (created when missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	lib, err := sound.LoadDefault()
	if err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(flagSSHAddr),
		wish.WithHostKeyPath(flagHostKey),
		wish.WithIdleTimeout(flagIdleTimeout),
		wish.WithMiddleware(
			gameMiddleware(lib),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// TCP_NODELAY keeps key presses from queueing behind frames.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting SSH server", "addr", flagSSHAddr)
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// gameMiddleware runs a terminal session on every SSH channel with a PTY.
func gameMiddleware(lib *sound.Library) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				wish.Fatalln(sess, "Error: PTY required. Connect with: ssh -t")
				return
			}

			sessLogger := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			sessLogger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			size := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					size.update(win.Width, win.Height)
				}
			}()

			style := lipgloss.NewRenderer(sess)
			style.SetColorProfile(colorProfile(pty.Term, sess.Environ()))

			session, err := tty.NewSession(bufio.NewReader(sess), sess, tty.Options{
				Settings: &settings,
				Sounds:   lib,
				Logger:   sessLogger,
				Style:    style,
				TermSize: size.getSize,
			})
			if err != nil {
				sessLogger.Error("create session", "err", err)
				wish.Fatalln(sess, "Error: could not start the game")
				return
			}
			if err := session.Run(sess.Context()); err != nil {
				sessLogger.Error("game error", "err", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}

// colorProfile guesses what the remote terminal can show from its TERM
// and COLORTERM.
func colorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, "COLORTERM="); ok && (v == "truecolor" || v == "24bit") {
			return termenv.TrueColor
		}
	}
	switch {
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case term == "" || term == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
