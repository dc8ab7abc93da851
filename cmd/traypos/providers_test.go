package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/traypos/internal/config"
	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const testLayout = `
displays:
  - name: eDP-1
    bounds: {x: 0, y: 0, width: 1920, height: 1080}
    taskbar: {edge: bottom, size: 40}
`

func TestConfigAlignment_FlagsOverride(t *testing.T) {
	c := config.DefaultConfig()
	c.Positioner.AlignX = "right"
	c.Positioner.AlignY = "up"

	align, err := c.Alignment().Override("", "")
	require.NoError(t, err)
	assert.Equal(t, positioner.Alignment{X: positioner.XAlignRight, Y: positioner.YAlignUp}, *align)

	align, err = c.Alignment().Override("left", "")
	require.NoError(t, err)
	assert.Equal(t, positioner.XAlignLeft, align.X)

	_, err = c.Alignment().Override("", "sideways")
	assert.Error(t, err)
}

func TestWindowSize(t *testing.T) {
	c := config.DefaultConfig()

	r, err := windowSize(c, "")
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight}, r)

	r, err = windowSize(c, "300x400")
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Width: 300, Height: 400}, r)

	_, err = windowSize(c, "big")
	assert.Error(t, err)
}

func TestParseAnchor(t *testing.T) {
	r, err := parseAnchor("1800,1040,40,40", "windows")
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{X: 1800, Y: 1040, Width: 40, Height: 40}, r)

	_, err = parseAnchor("", "windows")
	assert.Error(t, err)

	r, err = parseAnchor("", positioner.PlatformLinux)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{}, r)
}

func TestApplyOverrides(t *testing.T) {
	defer func() { globalOpts.layoutFile, globalOpts.provider, globalOpts.platform = "", "", "" }()

	globalOpts.layoutFile = "/tmp/displays.yaml"
	globalOpts.platform = "darwin"

	c := config.DefaultConfig()
	require.NoError(t, applyOverrides(c))
	assert.Equal(t, config.ProviderStatic, c.Display.Provider)
	assert.Equal(t, "/tmp/displays.yaml", c.LayoutPath())
	assert.Equal(t, "darwin", c.Positioner.Platform)

	globalOpts.provider = "x11"
	assert.Error(t, applyOverrides(config.DefaultConfig()))
}

func TestNewSource_Static(t *testing.T) {
	path := filepath.Join(t.TempDir(), "displays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLayout), 0o644))

	c := config.DefaultConfig()
	c.Display.Provider = config.ProviderStatic
	c.Display.LayoutFile = path
	c.Positioner.Platform = "windows"

	source, err := newSource(c)
	require.NoError(t, err)

	displays, err := source.Displays()
	require.NoError(t, err)
	require.Len(t, displays, 1)
	assert.Equal(t, geometry.Rect{Width: 1920, Height: 1040}, displays[0].WorkArea)

	pt, err := newPositioner(c, source).Calculate(
		geometry.Rect{Width: 300, Height: 400},
		geometry.Rect{X: 1800, Y: 1040, Width: 40, Height: 40},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 1540, Y: 640}, pt)
}

func TestNewSource_Errors(t *testing.T) {
	c := config.DefaultConfig()
	c.Display.Provider = "wayland"
	_, err := newSource(c)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	c.Display.Provider = config.ProviderStatic
	c.Display.LayoutFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = newSource(c)
	assert.Error(t, err)
}

func TestEffectivePlatform(t *testing.T) {
	assert.Equal(t, "windows", effectivePlatform("windows"))
	assert.NotEmpty(t, effectivePlatform(""))
}
