// Command rigid3d runs scene files through the physics world without a
// window and inspects settings files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"rigid3d/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rigid3d",
		Short:        "Headless rigid-body simulation",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newInspectCmd())
	return root
}

// loadSettings returns the defaults when path is empty.
func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(w io.Writer, s config.Settings, level *slog.LevelVar) (*slog.Logger, error) {
	l, err := s.SlogLevel()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	level.Set(l)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
