// Package geometry defines the integer screen-space value types shared by the
// positioner, the display providers and the output adapters.
package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoDisplays is returned when a nearest-display lookup has nothing to choose from.
var ErrNoDisplays = errors.New("no displays available")

// Point is a location in device pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle with a top-left origin.
// X and Y may be negative for displays left of or above the primary one.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// DistanceTo returns the squared distance from p to the closest point of r.
// Points inside r have distance 0.
func (r Rect) DistanceTo(p Point) int {
	dx := 0
	switch {
	case p.X < r.X:
		dx = r.X - p.X
	case p.X >= r.Right():
		dx = p.X - r.Right() + 1
	}
	dy := 0
	switch {
	case p.Y < r.Y:
		dy = r.Y - p.Y
	case p.Y >= r.Bottom():
		dy = p.Y - r.Bottom() + 1
	}
	return dx*dx + dy*dy
}

// String renders the rectangle as "x,y,w,h", the same form ParseRect accepts.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}

// ParseRect parses "x,y,w,h".
func ParseRect(s string) (Rect, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// ParseSize parses "w,h" (or "wxh") into a rectangle at the origin.
func ParseSize(s string) (Rect, error) {
	v, err := parseInts(strings.ReplaceAll(s, "x", ","), 2)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return Rect{Width: v[0], Height: v[1]}, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Display is one monitor as reported by the host display subsystem.
// WorkArea is the part of Bounds not reserved by the taskbar or dock.
type Display struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Bounds   Rect   `json:"bounds" yaml:"bounds"`
	WorkArea Rect   `json:"work_area" yaml:"work_area"`
}

// NearestDisplay returns the display containing p, or the closest one when
// no display contains it. Ties go to the earlier display.
func NearestDisplay(displays []Display, p Point) (Display, error) {
	if len(displays) == 0 {
		return Display{}, ErrNoDisplays
	}

	best := 0
	bestDist := displays[0].Bounds.DistanceTo(p)
	for i := 1; i < len(displays) && bestDist > 0; i++ {
		if d := displays[i].Bounds.DistanceTo(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return displays[best], nil
}
