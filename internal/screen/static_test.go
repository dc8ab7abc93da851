package screen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

const dualLayout = `
cursor: {x: 100, y: 100}
displays:
  - id: 1
    name: DP-1
    bounds: {x: -1280, y: 0, width: 1280, height: 1024}
    taskbar: {edge: left, size: 48}
  - name: eDP-1
    bounds: {x: 0, y: 0, width: 1920, height: 1080}
    work_area: {x: 0, y: 0, width: 1920, height: 1040}
  - id: 7
    bounds: {x: 1920, y: 0, width: 1024, height: 768}
`

func TestInsetWorkArea(t *testing.T) {
	bounds := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		edge     positioner.TaskbarPosition
		expected geometry.Rect
	}{
		{positioner.TaskbarTop, geometry.Rect{X: 0, Y: 40, Width: 1920, Height: 1040}},
		{positioner.TaskbarLeft, geometry.Rect{X: 40, Y: 0, Width: 1880, Height: 1080}},
		{positioner.TaskbarBottom, geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}},
		{positioner.TaskbarRight, geometry.Rect{X: 0, Y: 0, Width: 1880, Height: 1080}},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			wa := InsetWorkArea(bounds, tt.edge, 40)
			assert.Equal(t, tt.expected, wa)
			// The derived work area is classified back to the same edge.
			assert.Equal(t, tt.edge, positioner.TaskbarEdge(geometry.Display{Bounds: bounds, WorkArea: wa}))
		})
	}
}

func TestTaskbarInset_WorkArea(t *testing.T) {
	bounds := geometry.Rect{Width: 800, Height: 600}

	wa, err := TaskbarInset{}.WorkArea(bounds)
	require.NoError(t, err)
	assert.Equal(t, bounds, wa)

	_, err = TaskbarInset{Edge: "sideways", Size: 10}.WorkArea(bounds)
	assert.Error(t, err)
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([]byte(dualLayout))
	require.NoError(t, err)
	require.NotNil(t, layout.Cursor)
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, *layout.Cursor)

	displays, err := layout.Resolve()
	require.NoError(t, err)
	require.Len(t, displays, 3)

	assert.Equal(t, 1, displays[0].ID)
	assert.Equal(t, "DP-1", displays[0].Name)
	assert.Equal(t, geometry.Rect{X: -1232, Y: 0, Width: 1232, Height: 1024}, displays[0].WorkArea)

	assert.Equal(t, 2, displays[1].ID, "missing id defaults to 1-based index")
	assert.Equal(t, 1040, displays[1].WorkArea.Height)

	assert.Equal(t, 7, displays[2].ID)
	assert.Equal(t, displays[2].Bounds, displays[2].WorkArea)
}

func TestParseLayout_Errors(t *testing.T) {
	_, err := ParseLayout([]byte("displays: []"))
	assert.Error(t, err)

	_, err = ParseLayout([]byte("displays: [unterminated"))
	assert.Error(t, err)

	layout, err := ParseLayout([]byte("displays:\n  - bounds: {width: 0, height: 10}\n"))
	require.NoError(t, err)
	_, err = layout.Resolve()
	assert.Error(t, err)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "displays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dualLayout), 0644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Len(t, layout.Displays, 3)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStaticProvider(t *testing.T) {
	layout, err := ParseLayout([]byte(dualLayout))
	require.NoError(t, err)

	provider, err := NewStaticProviderFromLayout(layout, FixedCursor{X: 5, Y: 5})
	require.NoError(t, err)

	cursor, err := provider.CursorScreenPoint()
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, cursor, "layout cursor wins over fallback")

	d, err := provider.DisplayNearestPoint(geometry.Point{X: -5, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, d.ID)

	d, err = provider.DisplayNearestPoint(geometry.Point{X: 2500, Y: 900})
	require.NoError(t, err)
	assert.Equal(t, 7, d.ID)

	displays := provider.Displays()
	displays[0].ID = 99
	assert.Equal(t, 1, provider.Displays()[0].ID, "Displays returns a copy")
}

func TestStaticProvider_NoCursor(t *testing.T) {
	provider := NewStaticProvider([]geometry.Display{{ID: 1, Bounds: geometry.Rect{Width: 10, Height: 10}}}, nil)

	_, err := provider.CursorScreenPoint()
	assert.ErrorIs(t, err, ErrCursorUnavailable)
}

func TestStaticProvider_DrivesPositioner(t *testing.T) {
	layout, err := ParseLayout([]byte(dualLayout))
	require.NoError(t, err)
	provider, err := NewStaticProviderFromLayout(layout, nil)
	require.NoError(t, err)

	p := positioner.New(provider, positioner.WithPlatform("windows"))
	pt, err := p.Calculate(
		geometry.Rect{Width: 300, Height: 400},
		geometry.Rect{X: -1280, Y: 980, Width: 48, Height: 44},
		nil,
	)
	require.NoError(t, err)
	// Left taskbar: x is the work area origin, y is flipped up off the bottom.
	assert.Equal(t, geometry.Point{X: -1232, Y: 624}, pt)
}
