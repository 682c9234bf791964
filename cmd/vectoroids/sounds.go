package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tomz197/vectoroids/internal/sound"
)

var flagExport string

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List or export the sound clips",
	Args:  cobra.NoArgs,
	RunE:  runSounds,
}

func init() {
	soundsCmd.Flags().StringVar(&flagExport, "export", "", "Write the WAV files into this directory")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	nameStyle   = lipgloss.NewStyle().Width(10)
	fileStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("241"))
)

func runSounds(_ *cobra.Command, _ []string) error {
	lib, err := sound.LoadDefault()
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Sounds"))
	for _, id := range sound.IDs {
		format := lib.Format(id)
		fmt.Println(
			nameStyle.Render(id.String()) +
				fileStyle.Render(id.File()) +
				fmt.Sprintf("%6s  %d Hz", lib.Duration(id).Round(time.Millisecond), format.SampleRate),
		)
	}

	if flagExport == "" {
		return nil
	}
	if err := os.MkdirAll(flagExport, 0o755); err != nil {
		return err
	}
	for id, data := range lib.Streams() {
		path := filepath.Join(flagExport, id.File())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("export %s: %w", id, err)
		}
	}
	logger.Info("sounds exported", "dir", flagExport, "count", len(sound.IDs))
	return nil
}
