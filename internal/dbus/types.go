package dbus

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// Rect is the wire form of a rectangle, D-Bus signature (iiii).
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// ToGeometry converts the wire rectangle.
func (r Rect) ToGeometry() geometry.Rect {
	return geometry.Rect{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

// FromGeometry converts a rectangle to its wire form.
func FromGeometry(r geometry.Rect) Rect {
	return Rect{X: int32(r.X), Y: int32(r.Y), Width: int32(r.Width), Height: int32(r.Height)}
}

// ServerInfo holds the values returned by GetServerInformation.
type ServerInfo struct {
	Name    string
	Version string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:    "traypos",
		Version: "dev",
	}
}

// newRequestID returns a sortable ID used to correlate log lines of one call.
func newRequestID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
