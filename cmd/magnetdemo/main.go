// Command magnetdemo is an interactive playground for gesture snapping.
// Drag the blue rectangle with the mouse or one finger; pinch and twist with
// two fingers. It sticks to the gray magnets, to angle stops and to scale
// stops, and breaks free when pulled past the release threshold.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gesture"
)

const (
	windowTitle   = "Gesture — Magnet Demo"
	defaultWidth  = 640
	defaultHeight = 480
	defaultLayout = "magnetdemo.toml"
)

var (
	layoutPath  string
	scriptPath  string
	width       int
	height      int
	debug       bool
	doubleClick bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "magnetdemo",
		Short:        "Interactive gesture snapping demo",
		SilenceUsage: true,
		RunE:         runDemo,
	}

	rootCmd.Flags().StringVar(&layoutPath, "layout", defaultLayout, "TOML layout file (missing file uses the built-in layout)")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay instead of waiting for the user")
	rootCmd.Flags().IntVar(&width, "width", defaultWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", defaultHeight, "window height")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log gesture transitions and check state invariants")
	rootCmd.Flags().BoolVar(&doubleClick, "double-click", false, "enable double click (delays single clicks)")

	return rootCmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	l, err := LoadLayout(layoutPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("double-click") {
		l.Gesture.DoubleClick = doubleClick
	}

	if debug {
		gesture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var runner *gesture.ScriptRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		if runner, err = gesture.LoadScript(data); err != nil {
			return err
		}
	}

	g, err := newGame(l, width, height, runner)
	if err != nil {
		return err
	}
	g.detector.SetDebugMode(debug)

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(width, height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("failed to run demo: %w", err)
	}
	return nil
}
