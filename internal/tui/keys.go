package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Tab       key.Binding
	Up        key.Binding
	Down      key.Binding
	Search    key.Binding
	Filter    key.Binding
	Unfilter  key.Binding
	Refresh   key.Binding
	Open      key.Binding
	Back      key.Binding
	Submit    key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "reviews/critics")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "published since")),
		Unfilter:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear date")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open critic")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	}
}

// browseHelp and friends satisfy help.KeyMap for each screen.
type browseHelp struct{ k keyMap }

func (h browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Tab, h.k.Up, h.k.Down, h.k.Search, h.k.Filter, h.k.Unfilter, h.k.Refresh, h.k.Open, h.k.Quit}
}

func (h browseHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type detailHelp struct{ k keyMap }

func (h detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Back, h.k.Quit}
}

func (h detailHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Submit, h.k.Back}
}

func (h inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
