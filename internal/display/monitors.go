package display

import (
	"errors"
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
	"github.com/jmylchreest/traypos/internal/screen"
)

// ErrNoDisplay is returned when GDK has no default display.
var ErrNoDisplay = errors.New("no GDK display available")

// MonitorProvider implements positioner.DisplayProvider over GDK monitors.
// GTK4 does not expose a work area, so it is derived from a configured
// taskbar inset applied to every monitor.
type MonitorProvider struct {
	display *gdk.Display
	taskbar screen.TaskbarInset
	cursor  screen.CursorSource
	logger  *slog.Logger

	watched  *gio.ListModel
	handle   glib.SignalHandle
	onChange func(count int)
}

// NewMonitorProvider creates a provider for the default GDK display.
// GTK must be initialised before calling this.
func NewMonitorProvider(taskbar screen.TaskbarInset, cursor screen.CursorSource, logger *slog.Logger) (*MonitorProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, ErrNoDisplay
	}
	// Reject a bad edge up front rather than on every query.
	if _, err := taskbar.WorkArea(geometry.Rect{Width: 1, Height: 1}); err != nil {
		return nil, err
	}
	return &MonitorProvider{
		display: display,
		taskbar: taskbar,
		cursor:  cursor,
		logger:  logger,
	}, nil
}

// Displays returns the current monitor arrangement, 1-indexed in GDK order.
func (p *MonitorProvider) Displays() ([]geometry.Display, error) {
	monitors := p.monitors()
	displays := make([]geometry.Display, 0, len(monitors))
	for i, m := range monitors {
		r := m.Geometry()
		bounds := geometry.Rect{X: r.X(), Y: r.Y(), Width: r.Width(), Height: r.Height()}
		wa, err := p.taskbar.WorkArea(bounds)
		if err != nil {
			return nil, err
		}
		displays = append(displays, geometry.Display{
			ID:       i + 1,
			Name:     m.Connector(),
			Bounds:   bounds,
			WorkArea: wa,
		})
	}
	if len(displays) == 0 {
		return nil, geometry.ErrNoDisplays
	}
	return displays, nil
}

// CursorScreenPoint implements positioner.DisplayProvider. Wayland gives
// clients no global pointer position, so this defers to the cursor source.
func (p *MonitorProvider) CursorScreenPoint() (geometry.Point, error) {
	if p.cursor == nil {
		return geometry.Point{}, screen.ErrCursorUnavailable
	}
	return p.cursor.CursorScreenPoint()
}

// DisplayNearestPoint implements positioner.DisplayProvider.
func (p *MonitorProvider) DisplayNearestPoint(pt geometry.Point) (geometry.Display, error) {
	displays, err := p.Displays()
	if err != nil {
		return geometry.Display{}, err
	}
	return geometry.NearestDisplay(displays, pt)
}

// MonitorAt returns the GDK monitor nearest to pt together with its geometry.
func (p *MonitorProvider) MonitorAt(pt geometry.Point) (*gdk.Monitor, geometry.Display, error) {
	d, err := p.DisplayNearestPoint(pt)
	if err != nil {
		return nil, geometry.Display{}, err
	}
	monitors := p.monitors()
	if d.ID < 1 || d.ID > len(monitors) {
		return nil, geometry.Display{}, geometry.ErrNoDisplays
	}
	return monitors[d.ID-1], d, nil
}

// Watch follows monitor hot-plug on the current display. onChange, if set,
// is called with the new monitor count after each change. Must run on the
// GTK main loop.
func (p *MonitorProvider) Watch(onChange func(count int)) {
	p.Unwatch()
	list := p.display.Monitors()
	if list == nil {
		p.logger.Warn("no monitors list available")
		return
	}
	p.onChange = onChange
	p.watched = list
	p.handle = list.ConnectItemsChanged(func(position, removed, added uint) {
		p.logger.Debug("monitor list changed", "position", position, "removed", removed, "added", added)
		p.HandleMonitorChange()
	})
}

// Unwatch disconnects the handler installed by Watch.
func (p *MonitorProvider) Unwatch() {
	if p.watched == nil {
		return
	}
	p.watched.HandlerDisconnect(p.handle)
	p.watched = nil
	p.onChange = nil
}

// HandleMonitorChange refreshes the display reference after monitors change.
func (p *MonitorProvider) HandleMonitorChange() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		p.logger.Warn("no display available after monitor change")
		return
	}
	p.display = display
	count := len(p.monitors())
	p.logger.Info("monitor configuration changed", "count", count)
	if p.onChange != nil {
		p.onChange(count)
	}
}

func (p *MonitorProvider) monitors() []*gdk.Monitor {
	list := p.display.Monitors()
	if list == nil {
		p.logger.Warn("no monitors list available")
		return nil
	}
	n := list.NItems()
	out := make([]*gdk.Monitor, 0, n)
	for i := uint(0); i < n; i++ {
		if m := wrapMonitor(list.Item(i)); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// The gdk.Monitor struct embeds a *coreglib.Object, so we can create
	// one by casting the native pointer. This is how gotk4 does it internally.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

var _ positioner.DisplayProvider = (*MonitorProvider)(nil)
