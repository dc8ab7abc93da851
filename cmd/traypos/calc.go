package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/adapter/output"
	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

var calcOpts struct {
	anchor   string
	size     string
	alignX   string
	alignY   string
	format   string
	template string
	details  bool
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate where a popup should go",
	Long: `Calculate the top-left corner for a popup of the given size next to a
tray icon.

The anchor is the tray icon rectangle in screen coordinates. On linux the
icon bounds are unreliable, so the pointer position is used instead and
--anchor may be omitted.

Examples:
  # Popup of 300x400 next to an icon at 1800,1040
  traypos calc --anchor 1800,1040,40,40 --size 300x400

  # Force the window to extend leftwards from the icon
  traypos calc --anchor 1800,1040,40,40 --align-x left

  # Try a layout you do not have, pretending to be on windows
  traypos calc --layout dual.yaml --platform windows --anchor 10,0,24,24 -f json`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcOpts.anchor, "anchor", "a", "",
		"Tray icon bounds as x,y,w,h")
	calcCmd.Flags().StringVarP(&calcOpts.size, "size", "s", "",
		"Window size as WxH (default from config)")
	calcCmd.Flags().StringVar(&calcOpts.alignX, "align-x", "",
		"Horizontal alignment on top/bottom taskbars (left, center, right)")
	calcCmd.Flags().StringVar(&calcOpts.alignY, "align-y", "",
		"Vertical alignment on left/right taskbars (up, middle, down)")
	calcCmd.Flags().StringVarP(&calcOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	calcCmd.Flags().StringVar(&calcOpts.template, "template", "",
		"Custom Go template for plain output")
	calcCmd.Flags().BoolVarP(&calcOpts.details, "details", "d", false,
		"Show taskbar, anchor and display alongside the position")
}

func runCalc(cmd *cobra.Command, args []string) error {
	c := getConfig()

	anchor, err := parseAnchor(calcOpts.anchor, c.Positioner.Platform)
	if err != nil {
		return err
	}
	window, err := windowSize(c, calcOpts.size)
	if err != nil {
		return err
	}
	align, err := c.Alignment().Override(calcOpts.alignX, calcOpts.alignY)
	if err != nil {
		return err
	}

	formatter, err := newOutputFormatter(calcOpts.format, calcOpts.template, calcOpts.details)
	if err != nil {
		return err
	}

	provider, err := newSource(c)
	if err != nil {
		return err
	}

	placement, err := newPositioner(c, provider).Place(window, anchor, align)
	if err != nil {
		return fmt.Errorf("failed to calculate position: %w", err)
	}

	return formatter.FormatPlacement(os.Stdout, placement)
}

// parseAnchor parses --anchor. It may be omitted on linux, where the
// pointer position replaces it.
func parseAnchor(value, platform string) (geometry.Rect, error) {
	if value == "" {
		if effectivePlatform(platform) == positioner.PlatformLinux {
			return geometry.Rect{}, nil
		}
		return geometry.Rect{}, fmt.Errorf("--anchor is required")
	}
	r, err := geometry.ParseRect(value)
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid --anchor: %w", err)
	}
	return r, nil
}

// newOutputFormatter builds a formatter from command flags.
func newOutputFormatter(format, tmpl string, details bool) (output.Formatter, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	opts := output.DefaultFormatterOptions()
	opts.Template = tmpl
	opts.Verbose = details
	return output.NewFormatter(f, opts)
}
