// Package tui provides the BubbleTea-based placement preview.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
	"github.com/jmylchreest/traypos/internal/screen"
)

const (
	// DefaultAnchorSize is the side of the simulated tray icon.
	DefaultAnchorSize = 24
	// DefaultStep is how far one arrow press moves the anchor.
	DefaultStep = 8
	// defaultTaskbarSize is used when cycling the edge of a display with no inset.
	defaultTaskbarSize = 40
)

// Options configures the preview.
type Options struct {
	Displays   []geometry.Display
	Window     geometry.Rect
	Align      positioner.Alignment
	Platform   string
	AnchorSize int
	Step       int
	Logger     *slog.Logger
}

// Model is the preview TUI model.
type Model struct {
	// Configuration
	platform   string
	anchorSize int
	step       int
	logger     *slog.Logger

	// Components
	help help.Model
	keys KeyMap

	// State
	displays  []geometry.Display
	current   int
	anchor    geometry.Rect
	window    geometry.Rect
	align     positioner.Alignment
	placement positioner.Placement
	err       error
	width     int
	height    int
	ready     bool
}

// New creates a preview model. The anchor starts on the taskbar of the first
// display.
func New(opts Options) Model {
	if opts.AnchorSize <= 0 {
		opts.AnchorSize = DefaultAnchorSize
	}
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	displays := make([]geometry.Display, len(opts.Displays))
	copy(displays, opts.Displays)

	m := Model{
		platform:   opts.Platform,
		anchorSize: opts.AnchorSize,
		step:       opts.Step,
		logger:     opts.Logger,
		help:       help.New(),
		keys:       DefaultKeyMap(),
		displays:   displays,
		window:     geometry.Rect{Width: opts.Window.Width, Height: opts.Window.Height},
		align:      opts.Align,
	}
	m.resetAnchor()
	m.recalculate()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.anchor.X -= m.step
	case key.Matches(msg, m.keys.Right):
		m.anchor.X += m.step
	case key.Matches(msg, m.keys.Up):
		m.anchor.Y -= m.step
	case key.Matches(msg, m.keys.Down):
		m.anchor.Y += m.step
	case key.Matches(msg, m.keys.FastLeft):
		m.anchor.X -= 10 * m.step
	case key.Matches(msg, m.keys.FastRight):
		m.anchor.X += 10 * m.step
	case key.Matches(msg, m.keys.FastUp):
		m.anchor.Y -= 10 * m.step
	case key.Matches(msg, m.keys.FastDown):
		m.anchor.Y += 10 * m.step

	case key.Matches(msg, m.keys.CycleX):
		m.align.X = nextXAlign(m.align.X)
	case key.Matches(msg, m.keys.CycleY):
		m.align.Y = nextYAlign(m.align.Y)
	case key.Matches(msg, m.keys.CycleTaskbar):
		m.cycleTaskbar()
	case key.Matches(msg, m.keys.NextDisplay):
		if len(m.displays) > 0 {
			m.current = (m.current + 1) % len(m.displays)
		}
		m.resetAnchor()
	case key.Matches(msg, m.keys.Reset):
		m.resetAnchor()

	default:
		return m, nil
	}

	m.recalculate()
	return m, nil
}

// recalculate runs the positioner against the current layout. The anchor
// origin doubles as the cursor so the linux path can be previewed too.
func (m *Model) recalculate() {
	if len(m.displays) == 0 {
		m.err = geometry.ErrNoDisplays
		return
	}
	provider := screen.NewStaticProvider(m.displays, screen.FixedCursor(m.anchor.Origin()))
	p := positioner.New(provider, positioner.WithPlatform(m.platform), positioner.WithLogger(m.logger))

	align := m.align
	m.placement, m.err = p.Place(m.window, m.anchor, &align)
}

// resetAnchor puts the anchor on the taskbar of the current display.
func (m *Model) resetAnchor() {
	if len(m.displays) == 0 {
		return
	}
	m.anchor = trayAnchor(m.displays[m.current], m.anchorSize)
}

// cycleTaskbar moves the taskbar of the display under the anchor to the next
// edge, keeping its thickness.
func (m *Model) cycleTaskbar() {
	if len(m.displays) == 0 {
		return
	}
	idx := m.current
	if m.err == nil {
		for i, d := range m.displays {
			if d.ID == m.placement.Display.ID {
				idx = i
				break
			}
		}
	}

	d := m.displays[idx]
	size := taskbarThickness(d)
	if size == 0 {
		size = defaultTaskbarSize
	}

	edges := positioner.AllTaskbarPositions()
	next := edges[0]
	for i, e := range edges {
		if e == positioner.TaskbarEdge(d) {
			next = edges[(i+1)%len(edges)]
			break
		}
	}

	m.displays[idx].WorkArea = screen.InsetWorkArea(d.Bounds, next, size)
	m.current = idx
	m.resetAnchor()
	m.logger.Debug("taskbar moved", "display", d.ID, "edge", next.String(), "size", size)
}

// Placement returns the most recent placement.
func (m Model) Placement() (positioner.Placement, error) {
	return m.placement, m.err
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("traypos preview"))
	s.WriteString("\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		s.WriteString(errStyle.Render("error: " + m.err.Error()))
		s.WriteString("\n\n")
		s.WriteString(m.help.View(m.keys))
		return s.String()
	}

	helpView := m.help.View(m.keys)
	reserved := 4 + lipgloss.Height(helpView) + 2
	cols, rows := mapSize(m.placement.Display.Bounds, m.width-2, m.height-reserved)

	window := geometry.Rect{
		X:      m.placement.Point.X,
		Y:      m.placement.Point.Y,
		Width:  m.window.Width,
		Height: m.window.Height,
	}
	grid := buildGrid(m.placement.Display, window, m.placement.Anchor, cols, rows)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8"))
	s.WriteString(border.Render(renderGrid(grid)))
	s.WriteString("\n")
	s.WriteString(m.statusLine())
	s.WriteString("\n")
	s.WriteString(helpView)

	return s.String()
}

func (m Model) statusLine() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	d := m.placement.Display
	name := fmt.Sprintf("#%d", d.ID)
	if d.Name != "" {
		name += " " + d.Name
	}

	fields := []struct{ label, value string }{
		{"window", fmt.Sprintf("%d,%d", m.placement.Point.X, m.placement.Point.Y)},
		{"anchor", m.placement.Anchor.String()},
		{"taskbar", m.placement.Taskbar.String()},
		{"align", fmt.Sprintf("%s/%s", alignLabel(string(m.align.X)), alignLabel(string(m.align.Y)))},
		{"display", name},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, labelStyle.Render(f.label+" ")+valueStyle.Render(f.value))
	}
	return strings.Join(parts, "  ")
}

func alignLabel(s string) string {
	if s == "" {
		return "auto"
	}
	return s
}

// trayAnchor returns an icon-sized rectangle inside the taskbar strip, near
// the end where tray areas usually live.
func trayAnchor(d geometry.Display, size int) geometry.Rect {
	b := d.Bounds
	r := geometry.Rect{Width: size, Height: size}
	switch positioner.TaskbarEdge(d) {
	case positioner.TaskbarTop:
		r.X, r.Y = b.Right()-2*size, b.Y
	case positioner.TaskbarLeft:
		r.X, r.Y = b.X, b.Bottom()-2*size
	case positioner.TaskbarRight:
		r.X, r.Y = b.Right()-size, b.Bottom()-2*size
	default:
		r.X, r.Y = b.Right()-2*size, b.Bottom()-size
	}
	return r
}

// taskbarThickness returns the widest inset between bounds and work area.
func taskbarThickness(d geometry.Display) int {
	b, wa := d.Bounds, d.WorkArea
	return max(
		wa.Y-b.Y,
		wa.X-b.X,
		b.Bottom()-wa.Bottom(),
		b.Right()-wa.Right(),
	)
}

func nextXAlign(a positioner.XAlign) positioner.XAlign {
	switch a {
	case "":
		return positioner.XAlignLeft
	case positioner.XAlignLeft:
		return positioner.XAlignCenter
	case positioner.XAlignCenter:
		return positioner.XAlignRight
	default:
		return ""
	}
}

func nextYAlign(a positioner.YAlign) positioner.YAlign {
	switch a {
	case "":
		return positioner.YAlignUp
	case positioner.YAlignUp:
		return positioner.YAlignMiddle
	case positioner.YAlignMiddle:
		return positioner.YAlignDown
	default:
		return ""
	}
}

// Run starts the preview.
func Run(opts Options) error {
	if len(opts.Displays) == 0 {
		return errors.New("no displays to preview")
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
