package theme

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader applies a stylesheet to a GDK display.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	theme    *Theme
}

// NewLoader creates a new theme loader. GTK must be initialised.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves the stylesheet at path into the CSS provider. A broken user
// file falls back to the default so the popup stays usable.
func (l *Loader) Load(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	theme, err := Resolve(path)
	if err != nil {
		l.logger.Warn("failed to load stylesheet, using default", "path", path, "error", err)
		theme = Default()
	}

	l.provider.LoadFromString(theme.CSS)
	l.theme = theme

	if theme.IsDefault {
		l.logger.Debug("loaded default stylesheet")
	} else {
		l.logger.Debug("loaded user stylesheet", "path", theme.Path)
	}
	return err
}

// Theme returns the loaded stylesheet.
func (l *Loader) Theme() *Theme {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.theme
}

// Apply applies the loaded theme to a display.
// This should be called after the GTK application is initialized.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
