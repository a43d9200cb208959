// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up moves the cell selection or scrolls up.
	Up key.Binding

	// Down moves the cell selection or scrolls down.
	Down key.Binding

	// NextOutput selects the next output of the selected cell.
	NextOutput key.Binding

	// PrevOutput selects the previous output of the selected cell.
	PrevOutput key.Binding

	// Expand shows the selected output in full.
	Expand key.Binding

	// Reload reads the notebook again from disk.
	Reload key.Binding

	// PageUp scrolls one page up.
	PageUp key.Binding

	// PageDown scrolls one page down.
	PageDown key.Binding

	// Top jumps to the start.
	Top key.Binding

	// Bottom jumps to the end.
	Bottom key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextOutput: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next output"),
		),
		PrevOutput: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "prev output"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "full output"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// NotebookHelp returns keybindings for the notebook view.
func (k *KeyMap) NotebookHelp() []key.Binding {
	return []key.Binding{k.Up, k.NextOutput, k.Expand, k.Reload, k.Quit}
}

// OutputHelp returns keybindings for the full output view.
func (k *KeyMap) OutputHelp() []key.Binding {
	return []key.Binding{k.Up, k.PageDown, k.Top, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextOutput, k.PrevOutput},
		{k.Expand, k.Reload, k.Back},
		{k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
