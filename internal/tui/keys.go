package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextFolder key.Binding
	PrevFolder key.Binding
	Open       key.Binding
	Back       key.Binding
	AddLink    key.Binding
	AddFolder  key.Binding
	AddWidget  key.Binding
	Edit       key.Binding
	Rename     key.Binding
	Delete     key.Binding
	DeleteDir  key.Binding
	Move       key.Binding
	YankURL    key.Binding
	Search     key.Binding
	Reload     key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "row down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous tile"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next tile"),
		),
		NextFolder: key.NewBinding(
			key.WithKeys("tab", "L", "]"),
			key.WithHelp("tab/L", "next folder"),
		),
		PrevFolder: key.NewBinding(
			key.WithKeys("shift+tab", "H", "["),
			key.WithHelp("S-tab/H", "previous folder"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "-", "esc"),
			key.WithHelp("-", "up a folder"),
		),
		AddLink: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add link"),
		),
		AddFolder: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add folder"),
		),
		AddWidget: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "add widget"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Rename: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "rename folder"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		DeleteDir: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete folder"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yank URL"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
