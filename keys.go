package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit          key.Binding
	GlobalPrev    key.Binding
	GlobalNext    key.Binding
	GlobalReset   key.Binding
	RowUp         key.Binding
	RowDown       key.Binding
	Toggle        key.Binding
	CollapseAll   key.Binding
	ProtocolPrev  key.Binding
	ProtocolNext  key.Binding
	ProtocolReset key.Binding
	ProtocolSet   key.Binding
	CopyTimestamp key.Binding
	CopyStart     key.Binding
	CopyEnd       key.Binding
	CopyDelta     key.Binding
	ToggleTheme   key.Binding
	OpenHelp      key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	GlobalPrev: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous epoch (all)"),
	),
	GlobalNext: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next epoch (all)"),
	),
	GlobalReset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset to current epoch (all)"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "select previous protocol"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "select next protocol"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "expand/collapse protocol"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	ProtocolPrev: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "previous epoch (protocol)"),
	),
	ProtocolNext: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "next epoch (protocol)"),
	),
	ProtocolReset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset protocol offset"),
	),
	ProtocolSet: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "enter protocol epoch"),
	),
	CopyTimestamp: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy current timestamp"),
	),
	CopyStart: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "copy epoch start"),
	),
	CopyEnd: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "copy epoch end"),
	),
	CopyDelta: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "copy seconds until epoch end"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle light/dark theme"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.GlobalPrev,
		k.GlobalNext,
		k.GlobalReset,
		k.RowUp,
		k.RowDown,
		k.Toggle,
		k.CollapseAll,
		k.ProtocolPrev,
		k.ProtocolNext,
		k.ProtocolReset,
		k.ProtocolSet,
		k.CopyTimestamp,
		k.CopyStart,
		k.CopyEnd,
		k.CopyDelta,
		k.ToggleTheme,
		k.OpenHelp,
		k.Quit,
	}
}
