package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// Focus is the part of the screen receiving keys.
type Focus int

const (
	FocusList Focus = iota
	FocusInput
)

// Screen holds presentation state that is not part of task reconciliation.
type Screen struct {
	Focus      Focus
	Input      textinput.Model
	Spinner    spinner.Model
	Help       help.Model
	ShowHelp   bool
	Alert      *Failure // blocking alert; keys only dismiss it
	Confirming bool     // clear-all confirmation dialog is open
	StatusMsg  string
	Width      int
	Height     int
}

// NewScreen returns a screen with the input focused, ready for typing.
func NewScreen() *Screen {
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Screen{
		Focus:   FocusInput,
		Input:   ti,
		Spinner: s,
		Help:    help.New(),
	}
}

// Blocked reports whether a modal dialog is capturing keys.
func (s *Screen) Blocked() bool {
	return s.Alert != nil || s.Confirming
}
