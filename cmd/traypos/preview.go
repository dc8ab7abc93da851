package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/tui"
)

var previewOpts struct {
	size   string
	alignX string
	alignY string
	step   int
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Explore placements interactively",
	Long: `Launch a terminal preview of the display under the simulated tray icon.

The map shows the work area, the taskbar strip, the anchor and the window
where the positioner would put it.

Key bindings:
  ←/→/↑/↓     Move the anchor (shift or H/J/K/L for larger steps)
  x / y       Cycle horizontal / vertical alignment
  t           Move the taskbar to the next edge
  tab         Jump to the next display
  r           Reset the anchor onto the taskbar
  ?           Show help
  q           Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOpts.size, "size", "s", "",
		"Window size as WxH (default from config)")
	previewCmd.Flags().StringVar(&previewOpts.alignX, "align-x", "",
		"Initial horizontal alignment (left, center, right)")
	previewCmd.Flags().StringVar(&previewOpts.alignY, "align-y", "",
		"Initial vertical alignment (up, middle, down)")
	previewCmd.Flags().IntVar(&previewOpts.step, "step", tui.DefaultStep,
		"Pixels the anchor moves per key press")
}

func runPreview(cmd *cobra.Command, args []string) error {
	c := getConfig()

	window, err := windowSize(c, previewOpts.size)
	if err != nil {
		return err
	}
	align, err := c.Alignment().Override(previewOpts.alignX, previewOpts.alignY)
	if err != nil {
		return err
	}

	provider, err := newSource(c)
	if err != nil {
		return err
	}
	displays, err := provider.Displays()
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Displays: displays,
		Window:   window,
		Align:    *align,
		Platform: c.Positioner.Platform,
		Step:     previewOpts.step,
		Logger:   logger,
	})
}
