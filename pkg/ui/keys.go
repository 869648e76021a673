package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the global bindings of the workbench
type keyMap struct {
	run        key.Binding
	newline    key.Binding
	complete   key.Binding
	save       key.Binding
	export     key.Binding
	settings   key.Binding
	clear      key.Binding
	rawJSON    key.Binding
	focus      key.Binding
	copyRow    key.Binding
	copyFormat key.Binding
	detail     key.Binding
	history    key.Binding
	external   key.Binding
	toggleHelp key.Binding
	close      key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		run: key.NewBinding(
			key.WithKeys("enter", "ctrl+r"),
			key.WithHelp("enter/ctrl+r", "run query"),
		),
		newline: key.NewBinding(
			key.WithKeys("ctrl+n", "alt+enter"),
			key.WithHelp("ctrl+n", "newline"),
		),
		complete: key.NewBinding(
			key.WithKeys("tab", "ctrl+@", "ctrl+ "),
			key.WithHelp("tab", "complete"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save query"),
		),
		export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		settings: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "settings"),
		),
		clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear results"),
		),
		rawJSON: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "raw JSON"),
		),
		focus: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+t"),
			key.WithHelp("shift+tab", "switch pane"),
		),
		copyRow: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy row"),
		),
		copyFormat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle copy format"),
		),
		detail: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "row details"),
		),
		history: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous query"),
		),
		external: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "edit in $EDITOR"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.run,
		k.complete,
		k.save,
		k.export,
		k.settings,
		k.toggleHelp,
		k.quit,
	}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.run, k.newline, k.complete, k.save, k.history, k.external},
		{k.focus, k.copyRow, k.copyFormat, k.detail, k.rawJSON, k.clear},
		{k.export, k.settings, k.toggleHelp, k.close, k.quit},
	}
}
