package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	// Anchor movement
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	FastLeft  key.Binding
	FastRight key.Binding
	FastUp    key.Binding
	FastDown  key.Binding

	// Placement
	CycleX       key.Binding
	CycleY       key.Binding
	CycleTaskbar key.Binding
	NextDisplay  key.Binding
	Reset        key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleX, k.CycleY, k.CycleTaskbar, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.FastLeft, k.FastRight, k.FastUp, k.FastDown},
		{k.CycleX, k.CycleY, k.CycleTaskbar, k.NextDisplay},
		{k.Reset, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "anchor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "anchor right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "anchor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "anchor down"),
		),
		FastLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "anchor left ×10"),
		),
		FastRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "anchor right ×10"),
		),
		FastUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "anchor up ×10"),
		),
		FastDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "anchor down ×10"),
		),
		CycleX: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cycle x align"),
		),
		CycleY: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "cycle y align"),
		),
		CycleTaskbar: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle taskbar edge"),
		),
		NextDisplay: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "next display"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset anchor"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
