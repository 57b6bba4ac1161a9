package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevSw   key.Binding
	NextSw   key.Binding
	Add      key.Binding
	Focus    key.Binding
	Panel    key.Binding
	Close    key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Remove   key.Binding
	Edit     key.Binding
	Checkout key.Binding
	Yes      key.Binding
	No       key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevSw:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev color")),
		NextSw:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next color")),
		Add:      key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add to cart")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "products/cart")),
		Panel:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "toggle cart")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close cart")),
		Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Dec:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit quantity")),
		Checkout: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
		Yes:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Focus, k.Panel, k.Checkout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevSw, k.NextSw, k.Add},
		{k.Focus, k.Panel, k.Close, k.Inc, k.Dec, k.Remove, k.Edit},
		{k.Checkout, k.Quit},
	}
}
