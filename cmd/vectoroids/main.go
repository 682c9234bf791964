// vectoroids is a vector arcade shooter for terminals and browsers.
//
// Usage:
//
//	vectoroids play        - Play in this terminal
//	vectoroids serve       - Start the SSH server
//	vectoroids web         - Start the browser server
//	vectoroids snapshot    - Render frames to a PNG
//	vectoroids sounds      - List or export the sound clips
//
// Global flags:
//
//	--config <path>     - Settings file layered over the defaults
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/vectoroids/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string

	settings config.Settings
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vectoroids",
	Short: "Vectoroids - a vector arcade shooter",
	Long: `Vectoroids is an asteroid field shooter drawn with vector lines.
Play it in your terminal, host it over SSH, or serve it to browsers.

Examples:
  vectoroids play
  vectoroids serve --addr :2222
  vectoroids web --addr :8080
  vectoroids snapshot --ticks 300 --out frame.png`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a settings YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides the settings file)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(soundsCmd)
}

// setup loads settings and builds the shared logger.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	settings, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	levelName := settings.Log.Level
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vectoroids",
		Level:           level,
	})
	return nil
}
