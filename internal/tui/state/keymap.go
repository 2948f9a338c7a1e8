package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Actions returned by KeyState.HandleKey.
const (
	ActionUp               = "up"
	ActionDown             = "down"
	ActionTop              = "top"
	ActionBottom           = "bottom"
	ActionHalfUp           = "half_up"
	ActionHalfDown         = "half_down"
	ActionAdd              = "add"
	ActionEdit             = "edit"
	ActionComplete         = "complete"
	ActionDelete           = "delete"
	ActionCopy             = "copy"
	ActionNextFilter       = "filter_next"
	ActionFilterAll        = "filter_all"
	ActionFilterCompleted  = "filter_completed"
	ActionFilterIncomplete = "filter_incomplete"
	ActionClear            = "clear"
	ActionRefresh          = "refresh"
	ActionHelp             = "help"
	ActionQuit             = "quit"
	ActionSwitchFocus      = "switch_focus"
)

// KeymapData contains all key bindings for the application.
type KeymapData struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding

	// Task actions
	Add      key.Binding
	Edit     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Clear    key.Binding

	// Filter
	NextFilter       key.Binding
	FilterAll        key.Binding
	FilterCompleted  key.Binding
	FilterIncomplete key.Binding

	// Form
	Submit      key.Binding
	Cancel      key.Binding
	SwitchFocus key.Binding

	// General
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding

	vim bool
}

// DefaultKeymap returns the key bindings. With vimMode, delete, copy and
// go-to-top are the two-key sequences dd, yy and gg.
func DefaultKeymap(vimMode bool) KeymapData {
	km := KeymapData{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),

		Add:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Complete: key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "complete/undo")),
		Delete:   key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Clear:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear list")),

		NextFilter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		FilterAll:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterCompleted:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		FilterIncomplete: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "not completed")),

		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "input/list")),

		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		vim: vimMode,
	}

	if vimMode {
		km.Top.SetHelp("gg", "top")
		km.Delete = key.NewBinding(key.WithKeys("delete"), key.WithHelp("dd", "delete"))
		km.Copy = key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("yy", "copy"))
	} else {
		km.Top = key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top"))
		km.Delete = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete"))
		km.Copy = key.NewBinding(key.WithKeys("y", "ctrl+y"), key.WithHelp("y", "copy"))
	}

	return km
}

// ShortHelp implements help.KeyMap.
func (k KeymapData) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Complete, k.Delete, k.NextFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeymapData) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfUp, k.HalfDown},
		{k.Add, k.Edit, k.Complete, k.Delete, k.Copy, k.Clear},
		{k.NextFilter, k.FilterAll, k.FilterCompleted, k.FilterIncomplete},
		{k.Submit, k.Cancel, k.SwitchFocus, k.Refresh, k.Help, k.Quit},
	}
}

// KeyState tracks multi-key sequences (like 'gg' or 'dd' or 'yy').
type KeyState struct {
	WaitingG bool // Waiting for second 'g' in 'gg'
	WaitingD bool // Waiting for second 'd' in 'dd'
	WaitingY bool // Waiting for second 'y' in 'yy'
}

// HandleKey processes a key press in list focus and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, km KeymapData) (string, bool) {
	k := msg.String()

	if km.vim {
		waitingG, waitingD, waitingY := ks.WaitingG, ks.WaitingD, ks.WaitingY
		ks.Reset()

		switch {
		case waitingG && k == "g":
			return ActionTop, true
		case waitingD && k == "d":
			return ActionDelete, true
		case waitingY && k == "y":
			return ActionCopy, true
		}

		switch k {
		case "g":
			ks.WaitingG = true
			return "", true
		case "d":
			ks.WaitingD = true
			return "", true
		case "y":
			ks.WaitingY = true
			return "", true
		}
	}

	switch {
	case key.Matches(msg, km.Up):
		return ActionUp, true
	case key.Matches(msg, km.Down):
		return ActionDown, true
	case key.Matches(msg, km.Top):
		return ActionTop, true
	case key.Matches(msg, km.Bottom):
		return ActionBottom, true
	case key.Matches(msg, km.HalfUp):
		return ActionHalfUp, true
	case key.Matches(msg, km.HalfDown):
		return ActionHalfDown, true
	case key.Matches(msg, km.Add):
		return ActionAdd, true
	case key.Matches(msg, km.Edit):
		return ActionEdit, true
	case key.Matches(msg, km.Complete):
		return ActionComplete, true
	case key.Matches(msg, km.Delete):
		return ActionDelete, true
	case key.Matches(msg, km.Copy):
		return ActionCopy, true
	case key.Matches(msg, km.Clear):
		return ActionClear, true
	case key.Matches(msg, km.NextFilter):
		return ActionNextFilter, true
	case key.Matches(msg, km.FilterAll):
		return ActionFilterAll, true
	case key.Matches(msg, km.FilterCompleted):
		return ActionFilterCompleted, true
	case key.Matches(msg, km.FilterIncomplete):
		return ActionFilterIncomplete, true
	case key.Matches(msg, km.SwitchFocus):
		return ActionSwitchFocus, true
	case key.Matches(msg, km.Refresh):
		return ActionRefresh, true
	case key.Matches(msg, km.Help):
		return ActionHelp, true
	case key.Matches(msg, km.Quit):
		return ActionQuit, true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.WaitingD = false
	ks.WaitingY = false
}
