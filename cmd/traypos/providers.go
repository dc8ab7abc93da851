package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/traypos/internal/config"
	"github.com/jmylchreest/traypos/internal/display"
	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
	"github.com/jmylchreest/traypos/internal/screen"
)

// ErrUnknownProvider is returned for a provider name no factory handles.
var ErrUnknownProvider = errors.New("unknown display provider")

// displaySource is a DisplayProvider that can also list every display.
type displaySource interface {
	positioner.DisplayProvider
	Displays() ([]geometry.Display, error)
}

// staticSource adapts screen.StaticProvider to displaySource.
type staticSource struct {
	*screen.StaticProvider
}

func (s staticSource) Displays() ([]geometry.Display, error) {
	return s.StaticProvider.Displays(), nil
}

// mainLoopSource runs display queries on the GLib main loop. GDK is not
// thread safe and D-Bus calls arrive on their own goroutines.
type mainLoopSource struct {
	inner *display.MonitorProvider
}

func (s mainLoopSource) CursorScreenPoint() (geometry.Point, error) {
	return s.inner.CursorScreenPoint()
}

func (s mainLoopSource) DisplayNearestPoint(pt geometry.Point) (geometry.Display, error) {
	var (
		d   geometry.Display
		err error
	)
	done := make(chan struct{})
	glib.IdleAdd(func() {
		d, err = s.inner.DisplayNearestPoint(pt)
		close(done)
	})
	<-done
	return d, err
}

// newCursorSource returns the configured cursor command, or nil with a
// warning when it cannot be used.
func newCursorSource(c *config.Config) screen.CursorSource {
	if c.Display.CursorCommand == "" {
		return nil
	}
	cursor, err := screen.NewCommandCursor(c.Display.CursorCommand)
	if err != nil {
		logger.Warn("ignoring cursor command", "command", c.Display.CursorCommand, "error", err)
		return nil
	}
	return cursor
}

// newStaticSource loads the layout file named by the config.
func newStaticSource(c *config.Config) (displaySource, error) {
	path := c.LayoutPath()
	layout, err := screen.LoadLayout(path)
	if err != nil {
		return nil, fmt.Errorf("static provider: %w", err)
	}
	provider, err := screen.NewStaticProviderFromLayout(layout, newCursorSource(c))
	if err != nil {
		return nil, fmt.Errorf("static provider: %s: %w", path, err)
	}
	logger.Debug("loaded display layout", "path", path, "displays", len(provider.Displays()))
	return staticSource{provider}, nil
}

// newMonitorProvider creates the GDK provider. GTK must be initialised.
func newMonitorProvider(c *config.Config) (*display.MonitorProvider, error) {
	taskbar := screen.TaskbarInset{Edge: c.Display.Taskbar.Edge, Size: c.Display.Taskbar.Size}
	monitors, err := display.NewMonitorProvider(taskbar, newCursorSource(c), logger)
	if err != nil {
		return nil, fmt.Errorf("gdk provider: %w", err)
	}
	return monitors, nil
}

// newSource creates the configured provider for one-shot commands, which
// query GDK from the main goroutine after initialising GTK.
func newSource(c *config.Config) (displaySource, error) {
	switch c.Display.Provider {
	case config.ProviderStatic:
		return newStaticSource(c)
	case config.ProviderGDK:
		if !gtk.InitCheck() {
			return nil, fmt.Errorf("gdk provider: %w", display.ErrNoDisplay)
		}
		return newMonitorProvider(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, c.Display.Provider)
	}
}

// newPositioner creates a positioner over provider using the configured platform.
func newPositioner(c *config.Config, provider positioner.DisplayProvider) *positioner.Positioner {
	return positioner.New(provider,
		positioner.WithPlatform(c.Positioner.Platform),
		positioner.WithLogger(logger),
	)
}

// windowSize parses a --size flag, falling back to the configured size.
func windowSize(c *config.Config, size string) (geometry.Rect, error) {
	if size == "" {
		return geometry.Rect{Width: c.Window.Width, Height: c.Window.Height}, nil
	}
	r, err := geometry.ParseSize(size)
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid --size: %w", err)
	}
	return r, nil
}

// effectivePlatform returns the platform a positioner would use.
func effectivePlatform(platform string) string {
	if platform == "" {
		return runtime.GOOS
	}
	return platform
}
