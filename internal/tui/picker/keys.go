package picker

import "github.com/charmbracelet/bubbles/key"

// keyMap клавиши экрана выбора песни
type keyMap struct {
	NextStage       key.Binding
	ToggleList      key.Binding
	ToggleClear     key.Binding
	ToggleVIP       key.Binding
	CycleSort       key.Binding
	Random          key.Binding
	Accept          key.Binding
	Reject          key.Binding
	AcceptNoExclude key.Binding
	RejectNoExclude key.Binding
	Reset           key.Binding
	Save            key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextStage: key.NewBinding(
			key.WithKeys("s", "tab"),
			key.WithHelp("s", "след. стадия"),
		),
		ToggleList: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "список"),
		),
		ToggleClear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "прошлые стадии"),
		),
		ToggleVIP: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "VIP"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "сортировка"),
		),
		Random: key.NewBinding(
			key.WithKeys("r", " "),
			key.WithHelp("r/пробел", "случайная песня"),
		),
		Accept: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "принять"),
		),
		Reject: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "отклонить"),
		),
		AcceptNoExclude: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "принять без исключения"),
		),
		RejectNoExclude: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "отклонить без исключения"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "сброс"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "сохранить"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "справка"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "выход"),
		),
	}
}

// ShortHelp реализует help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Random, k.NextStage, k.ToggleList, k.Help, k.Quit}
}

// FullHelp реализует help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Random, k.Accept, k.Reject, k.AcceptNoExclude, k.RejectNoExclude},
		{k.NextStage, k.ToggleClear, k.ToggleVIP, k.Reset},
		{k.ToggleList, k.CycleSort, k.Save, k.Help, k.Quit},
	}
}
