package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// cell is what occupies one character of the display map.
type cell int

const (
	cellWork cell = iota
	cellTaskbar
	cellWindow
	cellAnchor
)

var (
	workStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	taskbarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	windowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	anchorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func (c cell) rune() rune {
	switch c {
	case cellTaskbar:
		return '▒'
	case cellWindow:
		return '█'
	case cellAnchor:
		return '◆'
	default:
		return '·'
	}
}

func (c cell) style() lipgloss.Style {
	switch c {
	case cellTaskbar:
		return taskbarStyle
	case cellWindow:
		return windowStyle
	case cellAnchor:
		return anchorStyle
	default:
		return workStyle
	}
}

// buildGrid samples the display at the centre of each character cell.
// The anchor always gets at least one cell even when smaller than a cell.
func buildGrid(display geometry.Display, window, anchor geometry.Rect, cols, rows int) [][]cell {
	b := display.Bounds
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		y := b.Y + (2*r+1)*b.Height/(2*rows)
		for c := range grid[r] {
			x := b.X + (2*c+1)*b.Width/(2*cols)
			pt := geometry.Point{X: x, Y: y}
			switch {
			case anchor.Contains(pt):
				grid[r][c] = cellAnchor
			case window.Contains(pt):
				grid[r][c] = cellWindow
			case !display.WorkArea.Contains(pt):
				grid[r][c] = cellTaskbar
			default:
				grid[r][c] = cellWork
			}
		}
	}

	col := clamp((anchor.X+anchor.Width/2-b.X)*cols/b.Width, 0, cols-1)
	row := clamp((anchor.Y+anchor.Height/2-b.Y)*rows/b.Height, 0, rows-1)
	grid[row][col] = cellAnchor

	return grid
}

// renderGrid turns a grid into styled lines, styling runs of equal cells
// together.
func renderGrid(grid [][]cell) string {
	lines := make([]string, len(grid))
	for r, row := range grid {
		var sb strings.Builder
		for start := 0; start < len(row); {
			end := start
			for end < len(row) && row[end] == row[start] {
				end++
			}
			sb.WriteString(row[start].style().Render(strings.Repeat(string(row[start].rune()), end-start)))
			start = end
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// mapSize fits a display into at most maxCols×maxRows characters, keeping
// its aspect ratio with terminal cells treated as twice as tall as wide.
func mapSize(bounds geometry.Rect, maxCols, maxRows int) (int, int) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return maxCols, maxRows
	}
	cols := maxCols
	rows := cols * bounds.Height / bounds.Width / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * bounds.Width / bounds.Height
	}
	return max(cols, 8), max(rows, 4)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
