package screen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// ErrCursorUnavailable is returned when no cursor position can be obtained.
var ErrCursorUnavailable = errors.New("cursor position unavailable")

// CursorSource reports the pointer position in screen coordinates.
type CursorSource interface {
	CursorScreenPoint() (geometry.Point, error)
}

// Layout is the on-disk description of a display arrangement.
//
//	cursor: {x: 960, y: 540}
//	displays:
//	  - id: 1
//	    name: eDP-1
//	    bounds: {x: 0, y: 0, width: 1920, height: 1080}
//	    taskbar: {edge: bottom, size: 40}
type Layout struct {
	Cursor   *geometry.Point `yaml:"cursor,omitempty"`
	Displays []LayoutDisplay `yaml:"displays"`
}

// LayoutDisplay is one display entry. The work area is taken from WorkArea
// when set, otherwise derived from Taskbar, otherwise equal to Bounds.
type LayoutDisplay struct {
	ID       int            `yaml:"id"`
	Name     string         `yaml:"name,omitempty"`
	Bounds   geometry.Rect  `yaml:"bounds"`
	WorkArea *geometry.Rect `yaml:"work_area,omitempty"`
	Taskbar  *TaskbarInset  `yaml:"taskbar,omitempty"`
}

// TaskbarInset is a panel of Size pixels along Edge.
type TaskbarInset struct {
	Edge string `yaml:"edge"`
	Size int    `yaml:"size"`
}

// WorkArea returns bounds with the inset removed. An empty edge or a
// non-positive size leaves the bounds unchanged.
func (t TaskbarInset) WorkArea(bounds geometry.Rect) (geometry.Rect, error) {
	if t.Edge == "" || t.Size <= 0 {
		return bounds, nil
	}
	edge, err := positioner.ParseTaskbarPosition(t.Edge)
	if err != nil {
		return geometry.Rect{}, err
	}
	return InsetWorkArea(bounds, edge, t.Size), nil
}

// InsetWorkArea removes a taskbar of the given thickness from one edge of bounds.
func InsetWorkArea(bounds geometry.Rect, edge positioner.TaskbarPosition, size int) geometry.Rect {
	wa := bounds
	switch edge {
	case positioner.TaskbarTop:
		wa.Y += size
		wa.Height -= size
	case positioner.TaskbarLeft:
		wa.X += size
		wa.Width -= size
	case positioner.TaskbarBottom:
		wa.Height -= size
	case positioner.TaskbarRight:
		wa.Width -= size
	}
	return wa
}

// Resolve converts the layout into displays.
func (l *Layout) Resolve() ([]geometry.Display, error) {
	displays := make([]geometry.Display, 0, len(l.Displays))
	for i, ld := range l.Displays {
		if ld.Bounds.Width <= 0 || ld.Bounds.Height <= 0 {
			return nil, fmt.Errorf("display %d: bounds must have a positive size", i)
		}

		d := geometry.Display{ID: ld.ID, Name: ld.Name, Bounds: ld.Bounds, WorkArea: ld.Bounds}
		if d.ID == 0 {
			d.ID = i + 1
		}

		switch {
		case ld.WorkArea != nil:
			d.WorkArea = *ld.WorkArea
		case ld.Taskbar != nil:
			wa, err := ld.Taskbar.WorkArea(ld.Bounds)
			if err != nil {
				return nil, fmt.Errorf("display %d: %w", i, err)
			}
			d.WorkArea = wa
		}
		displays = append(displays, d)
	}
	return displays, nil
}

// ParseLayout decodes a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse display layout: %w", err)
	}
	if len(l.Displays) == 0 {
		return nil, errors.New("display layout has no displays")
	}
	return &l, nil
}

// LoadLayout reads and decodes a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read display layout: %w", err)
	}
	return ParseLayout(data)
}

// StaticProvider serves a fixed display arrangement. It is immutable and
// safe for concurrent use.
type StaticProvider struct {
	displays []geometry.Display
	cursor   CursorSource
}

// NewStaticProvider creates a provider over displays. cursor may be nil, in
// which case CursorScreenPoint returns ErrCursorUnavailable.
func NewStaticProvider(displays []geometry.Display, cursor CursorSource) *StaticProvider {
	copied := make([]geometry.Display, len(displays))
	copy(copied, displays)
	return &StaticProvider{displays: copied, cursor: cursor}
}

// NewStaticProviderFromLayout resolves a layout into a provider. A cursor
// recorded in the layout takes precedence over the fallback source.
func NewStaticProviderFromLayout(l *Layout, fallback CursorSource) (*StaticProvider, error) {
	displays, err := l.Resolve()
	if err != nil {
		return nil, err
	}
	cursor := fallback
	if l.Cursor != nil {
		cursor = FixedCursor(*l.Cursor)
	}
	return NewStaticProvider(displays, cursor), nil
}

// Displays returns a copy of the served displays.
func (p *StaticProvider) Displays() []geometry.Display {
	out := make([]geometry.Display, len(p.displays))
	copy(out, p.displays)
	return out
}

// CursorScreenPoint implements positioner.DisplayProvider.
func (p *StaticProvider) CursorScreenPoint() (geometry.Point, error) {
	if p.cursor == nil {
		return geometry.Point{}, ErrCursorUnavailable
	}
	return p.cursor.CursorScreenPoint()
}

// DisplayNearestPoint implements positioner.DisplayProvider.
func (p *StaticProvider) DisplayNearestPoint(pt geometry.Point) (geometry.Display, error) {
	return geometry.NearestDisplay(p.displays, pt)
}

// FixedCursor is a CursorSource that always reports the same point.
type FixedCursor geometry.Point

// CursorScreenPoint implements CursorSource.
func (c FixedCursor) CursorScreenPoint() (geometry.Point, error) {
	return geometry.Point(c), nil
}
