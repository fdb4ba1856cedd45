package picker

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the picker's own bindings. Navigation and filtering are left
// to the list's default keymap.
type keyMap struct {
	Choose    key.Binding
	Copy      key.Binding
	Abort     key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy name"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q/esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
