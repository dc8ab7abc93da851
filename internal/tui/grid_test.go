package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/traypos/internal/geometry"
)

func TestBuildGrid(t *testing.T) {
	display := geometry.Display{
		Bounds:   geometry.Rect{Width: 100, Height: 50},
		WorkArea: geometry.Rect{Width: 100, Height: 40},
	}
	window := geometry.Rect{Width: 50, Height: 20}
	anchor := geometry.Rect{X: 90, Y: 40, Width: 10, Height: 10}

	grid := buildGrid(display, window, anchor, 10, 5)
	assert.Len(t, grid, 5)

	assert.Equal(t, cellWindow, grid[0][0])
	assert.Equal(t, cellWindow, grid[1][4])
	assert.Equal(t, cellWork, grid[1][5])
	assert.Equal(t, cellWork, grid[2][0])
	assert.Equal(t, cellTaskbar, grid[4][0])
	assert.Equal(t, cellAnchor, grid[4][9])
}

func TestBuildGrid_TinyAnchorStillVisible(t *testing.T) {
	display := geometry.Display{
		Bounds:   geometry.Rect{X: -200, Width: 200, Height: 100},
		WorkArea: geometry.Rect{X: -200, Width: 200, Height: 100},
	}
	anchor := geometry.Rect{X: -101, Y: 51}

	grid := buildGrid(display, geometry.Rect{}, anchor, 20, 10)
	assert.Equal(t, cellAnchor, grid[5][9])
}

func TestRenderGrid(t *testing.T) {
	grid := [][]cell{
		{cellWork, cellWork, cellWindow},
		{cellTaskbar, cellAnchor, cellTaskbar},
	}
	out := stripANSI(renderGrid(grid))
	assert.Equal(t, "··█\n▒◆▒", out)
}

func TestMapSize(t *testing.T) {
	cols, rows := mapSize(geometry.Rect{Width: 1920, Height: 1080}, 96, 40)
	assert.Equal(t, 96, cols)
	assert.Equal(t, 27, rows)

	cols, rows = mapSize(geometry.Rect{Width: 1080, Height: 1920}, 96, 20)
	assert.Equal(t, 20, rows)
	assert.Equal(t, 22, cols)

	cols, rows = mapSize(geometry.Rect{Width: 1920, Height: 1080}, 2, 1)
	assert.Equal(t, 8, cols)
	assert.Equal(t, 4, rows)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-3, 0, 9))
	assert.Equal(t, 9, clamp(12, 0, 9))
	assert.Equal(t, 4, clamp(4, 0, 9))
}

// stripANSI removes ANSI escape codes.
func stripANSI(s string) string {
	result := make([]rune, 0, len(s))
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
