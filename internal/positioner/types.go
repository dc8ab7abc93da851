package positioner

import (
	"fmt"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// TaskbarPosition is the screen edge the OS reserves for its taskbar or dock.
type TaskbarPosition int

const (
	TaskbarTop TaskbarPosition = iota
	TaskbarLeft
	TaskbarBottom
	TaskbarRight
)

// String returns the lowercase edge name.
func (p TaskbarPosition) String() string {
	switch p {
	case TaskbarTop:
		return "top"
	case TaskbarLeft:
		return "left"
	case TaskbarBottom:
		return "bottom"
	case TaskbarRight:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p TaskbarPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TaskbarPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseTaskbarPosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseTaskbarPosition parses an edge name.
func ParseTaskbarPosition(s string) (TaskbarPosition, error) {
	switch s {
	case "top":
		return TaskbarTop, nil
	case "left":
		return TaskbarLeft, nil
	case "bottom":
		return TaskbarBottom, nil
	case "right":
		return TaskbarRight, nil
	default:
		return 0, fmt.Errorf("invalid taskbar position %q: must be top, left, bottom or right", s)
	}
}

// AllTaskbarPositions lists every edge in detection priority order.
func AllTaskbarPositions() []TaskbarPosition {
	return []TaskbarPosition{TaskbarTop, TaskbarLeft, TaskbarBottom, TaskbarRight}
}

// XAlign selects how the window lines up with the anchor on a horizontal taskbar.
// The empty value means "not requested" and behaves like XAlignCenter, except
// that it never blocks overflow correction.
type XAlign string

const (
	XAlignLeft   XAlign = "left"
	XAlignCenter XAlign = "center"
	XAlignRight  XAlign = "right"
)

// YAlign selects how the window lines up with the anchor on a vertical taskbar.
// The empty value behaves like YAlignDown.
type YAlign string

const (
	YAlignUp     YAlign = "up"
	YAlignMiddle YAlign = "middle"
	YAlignDown   YAlign = "down"
)

// ParseXAlign validates a horizontal alignment. The empty string is accepted.
func ParseXAlign(s string) (XAlign, error) {
	switch a := XAlign(s); a {
	case "", XAlignLeft, XAlignCenter, XAlignRight:
		return a, nil
	default:
		return "", fmt.Errorf("invalid x alignment %q: must be left, center or right", s)
	}
}

// ParseYAlign validates a vertical alignment. The empty string is accepted.
func ParseYAlign(s string) (YAlign, error) {
	switch a := YAlign(s); a {
	case "", YAlignUp, YAlignMiddle, YAlignDown:
		return a, nil
	default:
		return "", fmt.Errorf("invalid y alignment %q: must be up, middle or down", s)
	}
}

// Alignment is an optional placement request. A nil *Alignment means defaults.
type Alignment struct {
	X XAlign `json:"x,omitempty" yaml:"x,omitempty"`
	Y YAlign `json:"y,omitempty" yaml:"y,omitempty"`
}

// Override returns a copy of a with the non-empty x and y values parsed in
// place of its own.
func (a Alignment) Override(x, y string) (*Alignment, error) {
	if x != "" {
		parsed, err := ParseXAlign(x)
		if err != nil {
			return nil, err
		}
		a.X = parsed
	}
	if y != "" {
		parsed, err := ParseYAlign(y)
		if err != nil {
			return nil, err
		}
		a.Y = parsed
	}
	return &a, nil
}

// DisplayProvider is the host display subsystem the positioner reads from.
// Both methods are queried live on every call.
type DisplayProvider interface {
	CursorScreenPoint() (geometry.Point, error)
	DisplayNearestPoint(p geometry.Point) (geometry.Display, error)
}

// Window is the part of a host window the positioner needs.
type Window interface {
	Bounds() geometry.Rect
	SetPosition(x, y int)
}

// Placement is the full result of a placement computation.
type Placement struct {
	Point   geometry.Point   `json:"point" yaml:"point"`
	Taskbar TaskbarPosition  `json:"taskbar" yaml:"taskbar"`
	Anchor  geometry.Rect    `json:"anchor" yaml:"anchor"`
	Window  geometry.Rect    `json:"window" yaml:"window"`
	Display geometry.Display `json:"display" yaml:"display"`
}
