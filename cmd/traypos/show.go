package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/config"
	"github.com/jmylchreest/traypos/internal/display"
	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
	"github.com/jmylchreest/traypos/internal/theme"
)

const (
	showAppID     = "io.github.jmylchreest.traypos.show"
	showNamespace = "traypos"
)

var showOpts struct {
	anchor  string
	size    string
	alignX  string
	alignY  string
	text    string
	timeout time.Duration
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open a popup window placed next to the tray icon",
	Long: `Open a layer-shell popup of the given size and place it with the
positioner. Useful for checking a placement on a real desktop.

The window closes after --timeout, or on SIGINT/SIGTERM when no timeout is
given.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.anchor, "anchor", "a", "",
		"Tray icon bounds as x,y,w,h")
	showCmd.Flags().StringVarP(&showOpts.size, "size", "s", "",
		"Window size as WxH (default from config)")
	showCmd.Flags().StringVar(&showOpts.alignX, "align-x", "",
		"Horizontal alignment (left, center, right)")
	showCmd.Flags().StringVar(&showOpts.alignY, "align-y", "",
		"Vertical alignment (up, middle, down)")
	showCmd.Flags().StringVar(&showOpts.text, "text", "traypos",
		"Text shown inside the popup")
	showCmd.Flags().DurationVar(&showOpts.timeout, "timeout", 5*time.Second,
		"Close the popup after this long (0 = until interrupted)")
}

func runShow(cmd *cobra.Command, args []string) error {
	c := getConfig()

	anchor, err := parseAnchor(showOpts.anchor, c.Positioner.Platform)
	if err != nil {
		return err
	}
	window, err := windowSize(c, showOpts.size)
	if err != nil {
		return err
	}
	align, err := c.Alignment().Override(showOpts.alignX, showOpts.alignY)
	if err != nil {
		return err
	}

	// Create the libadwaita application
	app := adw.NewApplication(showAppID, 0)

	var runErr error

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logger.Info("received signal, closing popup", "signal", sig)
		glib.IdleAdd(app.Quit)
	}()

	app.ConnectActivate(func() {
		popup, err := newPopup(&app.Application, c, window)
		if err != nil {
			runErr = err
			app.Quit()
			return
		}

		provider, err := showProvider(c, popup)
		if err != nil {
			runErr = err
			app.Quit()
			return
		}

		if err := newPositioner(c, provider).Position(popup, anchor, align); err != nil {
			runErr = fmt.Errorf("failed to position popup: %w", err)
			app.Quit()
			return
		}
		popup.Show()

		if showOpts.timeout > 0 {
			time.AfterFunc(showOpts.timeout, func() {
				glib.IdleAdd(app.Quit)
			})
		}
	})

	// GTK must not see the cobra arguments.
	if status := app.Run([]string{os.Args[0]}); status != 0 && runErr == nil {
		runErr = fmt.Errorf("application exited with status %d", status)
	}
	return runErr
}

// newPopup creates the layer-shell window with a label as its content.
func newPopup(app *gtk.Application, c *config.Config, size geometry.Rect) (*display.LayerWindow, error) {
	monitors, err := newMonitorProvider(c)
	if err != nil {
		return nil, err
	}

	styles := theme.NewLoader(logger)
	if err := styles.Load(c.StylePath()); err != nil {
		logger.Debug("using default popup stylesheet", "error", err)
	}
	styles.Apply(nil)

	popup := display.NewLayerWindow(app, monitors, size.Width, size.Height, showNamespace, logger)
	popup.Window().AddCSSClass(theme.PopupClass)

	label := gtk.NewLabel(showOpts.text)
	label.SetWrap(true)
	label.SetMarginTop(12)
	label.SetMarginBottom(12)
	label.SetMarginStart(12)
	label.SetMarginEnd(12)
	popup.Window().SetChild(label)

	return popup, nil
}

// showProvider returns the provider placements are computed against. The
// static provider can be used to test a layout on the real desktop; the
// window itself always lands on a GDK monitor.
func showProvider(c *config.Config, popup *display.LayerWindow) (positioner.DisplayProvider, error) {
	if c.Display.Provider == config.ProviderStatic {
		return newStaticSource(c)
	}
	return popup.Monitors(), nil
}
