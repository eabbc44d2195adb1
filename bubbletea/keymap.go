package bubbletea

import "github.com/charmbracelet/bubbles/key"

// Compile-time interface verification.
var _ interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
} = KeyMap{}

// KeyMap defines the key bindings for the analyzer screen. Bindings use
// control chords so they never collide with typing into the input buffer.
type KeyMap struct {
	Analyze       key.Binding
	CopyIssues    key.Binding
	CopySolutions key.Binding
	NextFocus     key.Binding
	PrevFocus     key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Clear         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Analyze: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "analyze"),
		),
		CopyIssues: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy issues"),
		),
		CopySolutions: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "copy solutions"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up", "pgup"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down", "pgdown"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear input"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.CopyIssues, k.CopySolutions, k.NextFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Analyze, k.Clear},
		{k.CopyIssues, k.CopySolutions},
		{k.NextFocus, k.PrevFocus, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}
