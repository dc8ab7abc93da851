// Package positioner computes where a borderless popup should go so that it
// sits next to a tray icon, on the taskbar side of the screen, and stays on
// the display.
//
// All geometry is read live from a DisplayProvider on every call; a
// Positioner holds no cached state and is safe for concurrent use.
package positioner

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// PlatformLinux is the platform on which tray icon bounds are not reliable
// and the cursor position is used as the anchor instead.
const PlatformLinux = "linux"

// Positioner places windows relative to a tray anchor.
type Positioner struct {
	provider DisplayProvider
	platform string
	logger   *slog.Logger
}

// Option configures a Positioner.
type Option func(*Positioner)

// WithPlatform overrides the platform identifier (defaults to runtime.GOOS).
// An empty value keeps the default.
func WithPlatform(platform string) Option {
	return func(p *Positioner) {
		if platform != "" {
			p.platform = platform
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Positioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Positioner reading from provider.
func New(provider DisplayProvider, opts ...Option) *Positioner {
	p := &Positioner{
		provider: provider,
		platform: runtime.GOOS,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform identifier in effect.
func (p *Positioner) Platform() string {
	return p.platform
}

// TaskbarPosition reports which edge the taskbar occupies on the display
// nearest to the anchor origin.
func (p *Positioner) TaskbarPosition(anchor geometry.Rect) (TaskbarPosition, error) {
	display, err := p.provider.DisplayNearestPoint(anchor.Origin())
	if err != nil {
		return 0, err
	}
	return TaskbarEdge(display), nil
}

// TaskbarEdge infers the taskbar edge from the work area insets of a display.
// The checks form a priority chain: a top inset wins over a left inset, and a
// display with no horizontal inset is classed as bottom, including one with no
// taskbar at all.
func TaskbarEdge(display geometry.Display) TaskbarPosition {
	switch {
	case display.WorkArea.Y > display.Bounds.Y:
		return TaskbarTop
	case display.WorkArea.X > display.Bounds.X:
		return TaskbarLeft
	case display.WorkArea.Width == display.Bounds.Width:
		return TaskbarBottom
	default:
		return TaskbarRight
	}
}

// Calculate returns the top-left origin for a window of the given size.
// align may be nil. Errors from the display provider are returned unchanged.
func (p *Positioner) Calculate(window, anchor geometry.Rect, align *Alignment) (geometry.Point, error) {
	placement, err := p.Place(window, anchor, align)
	if err != nil {
		return geometry.Point{}, err
	}
	return placement.Point, nil
}

// Position moves w next to the anchor. The window is never resized.
func (p *Positioner) Position(w Window, anchor geometry.Rect, align *Alignment) error {
	pt, err := p.Calculate(w.Bounds(), anchor, align)
	if err != nil {
		return err
	}
	w.SetPosition(pt.X, pt.Y)
	return nil
}

// Place is Calculate with the intermediate results attached.
func (p *Positioner) Place(window, anchor geometry.Rect, align *Alignment) (Placement, error) {
	if p.platform == PlatformLinux {
		cursor, err := p.provider.CursorScreenPoint()
		if err != nil {
			return Placement{}, err
		}
		anchor = geometry.Rect{X: cursor.X, Y: cursor.Y}
	}

	var a Alignment
	if align != nil {
		a = *align
	}

	display, err := p.provider.DisplayNearestPoint(anchor.Origin())
	if err != nil {
		return Placement{}, err
	}
	edge := TaskbarEdge(display)

	var pt geometry.Point
	switch edge {
	case TaskbarLeft:
		pt.X = display.WorkArea.X
		pt.Y = alignY(window, anchor, display, a.Y)
	case TaskbarRight:
		pt.X = display.WorkArea.Width - window.Width
		pt.Y = alignY(window, anchor, display, a.Y)
	case TaskbarBottom:
		pt.X = alignX(window, anchor, display, a.X)
		pt.Y = display.WorkArea.Height - window.Height
	default:
		pt.X = alignX(window, anchor, display, a.X)
		pt.Y = display.WorkArea.Y
	}

	p.logger.Debug("calculated window position",
		"platform", p.platform,
		"taskbar", edge.String(),
		"anchor", anchor.String(),
		"display", display.ID,
		"x", pt.X,
		"y", pt.Y,
	)

	return Placement{
		Point:   pt,
		Taskbar: edge,
		Anchor:  anchor,
		Window:  geometry.Rect{Width: window.Width, Height: window.Height},
		Display: display,
	}, nil
}

// alignX computes x for a horizontal taskbar.
// "alignLeft" puts the window's right edge on the anchor's right edge, so the
// window extends leftwards; "alignRight" puts its left edge on the anchor's
// left edge.
func alignX(window, anchor geometry.Rect, display geometry.Display, align XAlign) int {
	alignLeft := anchor.X + anchor.Width - window.Width
	alignRight := anchor.X

	var x int
	switch align {
	case XAlignRight:
		x = alignRight
	case XAlignLeft:
		x = alignLeft
	default:
		x = round(float64(anchor.X) + float64(anchor.Width)/2 - float64(window.Width)/2)
	}

	if x+window.Width > display.Bounds.X+display.Bounds.Width && align != XAlignLeft {
		x = alignLeft
	} else if x < display.Bounds.X && align != XAlignRight {
		x = alignRight
	}
	return x
}

// alignY computes y for a vertical taskbar. The overflow checks use the
// display height and zero rather than the display origin.
func alignY(window, anchor geometry.Rect, display geometry.Display, align YAlign) int {
	alignUp := anchor.Y + anchor.Height - window.Height
	alignDown := anchor.Y

	var y int
	switch align {
	case YAlignUp:
		y = alignUp
	case YAlignMiddle:
		y = round(float64(anchor.Y) + float64(anchor.Height)/2 - float64(window.Height)/2)
	default:
		y = alignDown
	}

	if y+window.Height > display.Bounds.Height && align != YAlignUp {
		y = alignUp
	} else if y < 0 && align != YAlignDown {
		y = alignDown
	}
	return y
}

// round rounds half-way values towards positive infinity.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
