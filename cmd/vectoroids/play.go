package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/vectoroids/internal/sound"
	"github.com/tomz197/vectoroids/internal/tty"
)

var (
	flagMute    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Play in the current terminal.

Controls:
  Left/Right, A/D  - Rotate
  Up, W            - Thrust
  Down, S          - Hyperspace
  Space            - Fire
  P                - Pause
  1 / 2            - Laser / rocket
  Esc, Q           - Back to title, quit from title

Terminals report no key releases, so a key counts as held while it
repeats.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of discarding them")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// The screen belongs to the game; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	playLogger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Level:           logger.GetLevel(),
	})

	lib, err := sound.LoadDefault()
	if err != nil {
		return err
	}

	var onSound func(sound.ID)
	if !flagMute {
		player := sound.NewPlayer(lib, playLogger)
		if err := player.Initialize(); err != nil {
			playLogger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			onSound = player.Play
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	session, err := tty.NewSession(bufio.NewReader(os.Stdin), os.Stdout, tty.Options{
		Settings: &settings,
		Sounds:   lib,
		Logger:   playLogger,
		OnSound:  onSound,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return session.Run(ctx)
}
