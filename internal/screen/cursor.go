package screen

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// DefaultCursorTimeout bounds how long a cursor command may run.
const DefaultCursorTimeout = 2 * time.Second

// CommandCursor obtains the pointer position by running an external command.
// Both xdotool's --shell output ("X=10\nY=20") and a bare "10, 20" pair
// (hyprctl cursorpos) are understood.
type CommandCursor struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewCommandCursor creates a cursor source from a command line such as
// "xdotool getmouselocation --shell".
func NewCommandCursor(commandLine string) (*CommandCursor, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("empty cursor command")
	}
	return &CommandCursor{name: fields[0], args: fields[1:], timeout: DefaultCursorTimeout}, nil
}

// CursorScreenPoint implements CursorSource.
func (c *CommandCursor) CursorScreenPoint() (geometry.Point, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, c.name, c.args...).Output()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: %s: %v", ErrCursorUnavailable, c.name, err)
	}
	return ParseCursorOutput(string(output))
}

// ParseCursorOutput extracts a point from cursor command output.
func ParseCursorOutput(output string) (geometry.Point, error) {
	var p geometry.Point
	var haveX, haveY bool
	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			p.X, haveX = n, true
		case "Y":
			p.Y, haveY = n, true
		}
	}
	if haveX && haveY {
		return p, nil
	}

	// "x, y" form
	if xs, ys, ok := strings.Cut(strings.TrimSpace(output), ","); ok {
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if errX == nil && errY == nil {
			return geometry.Point{X: x, Y: y}, nil
		}
	}

	return geometry.Point{}, fmt.Errorf("%w: unrecognised output %q", ErrCursorUnavailable, strings.TrimSpace(output))
}
