package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Draw    key.Binding
	Replay  key.Binding
	Reset   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Louder  key.Binding
	Quieter key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Draw: key.NewBinding(
			key.WithKeys("n", " ", "enter"),
			key.WithHelp("n/space", "あたらしい よみふだ"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "もういちど よむ"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "リセット"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Louder: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "louder"),
		),
		Quieter: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "quieter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Replay, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Replay, k.Reset},
		{k.Faster, k.Slower, k.Louder, k.Quieter},
		{k.Help, k.Quit},
	}
}
