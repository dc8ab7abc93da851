package display

import (
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// LayerWindow is a borderless layer-shell window that can be placed at
// absolute screen coordinates. Layer-shell only knows per-output margins, so
// SetPosition picks the monitor under the target point and converts the
// global coordinates into top/left margins on it.
type LayerWindow struct {
	window   *gtk.Window
	monitors *MonitorProvider
	logger   *slog.Logger

	x, y int
}

// NewLayerWindow creates a hidden popup window of the given size.
func NewLayerWindow(app *gtk.Application, monitors *MonitorProvider, width, height int, namespace string, logger *slog.Logger) *LayerWindow {
	if logger == nil {
		logger = slog.Default()
	}

	w := gtk.NewWindow()
	w.SetApplication(app)
	w.SetDecorated(false)
	w.SetResizable(false)
	w.SetDefaultSize(width, height)
	w.SetSizeRequest(width, height)

	layershell.InitForWindow(w)
	layershell.SetLayer(w, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(w, 0) // Don't reserve space
	layershell.SetKeyboardMode(w, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w, namespace)

	// Pin to the top-left corner; margins carry the position.
	layershell.SetAnchor(w, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(w, layershell.LayerShellEdgeRight, false)

	return &LayerWindow{
		window:   w,
		monitors: monitors,
		logger:   logger,
	}
}

// Window returns the underlying GTK window, e.g. to set its child.
func (w *LayerWindow) Window() *gtk.Window {
	return w.window
}

// Monitors returns the provider used to resolve the output under a position.
func (w *LayerWindow) Monitors() *MonitorProvider {
	return w.monitors
}

// Bounds implements positioner.Window. The size is the window's default size.
func (w *LayerWindow) Bounds() geometry.Rect {
	width, height := w.window.DefaultSize()
	return geometry.Rect{X: w.x, Y: w.y, Width: width, Height: height}
}

// SetPosition implements positioner.Window.
func (w *LayerWindow) SetPosition(x, y int) {
	w.x, w.y = x, y

	origin := geometry.Point{}
	monitor, d, err := w.monitors.MonitorAt(geometry.Point{X: x, Y: y})
	if err != nil {
		w.logger.Warn("no monitor for window position, using output origin", "x", x, "y", y, "error", err)
	} else {
		layershell.SetMonitor(w.window, monitor)
		origin = d.Bounds.Origin()
	}

	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, x-origin.X)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, y-origin.Y)

	w.logger.Debug("window positioned", "x", x, "y", y, "display", d.ID)
}

// Show presents the window.
func (w *LayerWindow) Show() {
	w.window.SetVisible(true)
}

// Hide hides the window.
func (w *LayerWindow) Hide() {
	w.window.SetVisible(false)
}

// Visible reports whether the window is shown.
func (w *LayerWindow) Visible() bool {
	return w.window.IsVisible()
}

var _ positioner.Window = (*LayerWindow)(nil)
