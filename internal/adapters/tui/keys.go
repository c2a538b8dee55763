package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the list and the dialog. The calendar and
// time-list panels read raw keys like the pickers do.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Quit     key.Binding

	Save          key.Binding
	Cancel        key.Binding
	NextField     key.Binding
	Calendar      key.Binding
	TimeList      key.Binding
	ClearSchedule key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Complete: key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Calendar:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "date")),
		TimeList:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "time")),
		ClearSchedule: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear date")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Complete, k.Delete, k.Quit}
}

func (k keyMap) dialogHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.NextField, k.Calendar, k.TimeList, k.ClearSchedule}
}
