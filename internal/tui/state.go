package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/hive/internal/tui/screen"
)

// Mode is the current interaction mode of the dashboard.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddLink
	ModeEditLink
	ModeAddFolder
	ModeRenameFolder
	ModeAddWidget
	ModeWidgetSource
	ModeConfirmDelete
	ModeMove
	ModeSearch
	ModeHelp
)

// MessageType controls how the status message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Field indexes into ModalState.Inputs.
const (
	fieldTitle = iota
	fieldSecond // url, widget type or widget source
)

// ModalState holds state for the add/edit modals.
type ModalState struct {
	Inputs   [2]textinput.Model
	Focus    int    // focused input
	TargetID string // node being edited or deleted, or the parent for adds
}

// NewModalState creates a new ModalState with initialized inputs.
func NewModalState(cfg screen.Config) ModalState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Width = cfg.Input.StandardWidth

	second := textinput.New()
	second.Width = cfg.Input.StandardWidth

	return ModalState{Inputs: [2]textinput.Model{title, second}}
}

// Open resets the modal for a new session. Only the first n inputs are used.
func (m *ModalState) Open(cfg screen.Config, mode Mode, targetID string) {
	m.TargetID = targetID
	m.Focus = fieldTitle
	for i := range m.Inputs {
		m.Inputs[i].Reset()
		m.Inputs[i].Blur()
	}

	title := &m.Inputs[fieldTitle]
	second := &m.Inputs[fieldSecond]
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Placeholder = "Title"

	switch mode {
	case ModeAddLink, ModeEditLink:
		second.Placeholder = "https://..."
		second.CharLimit = cfg.Input.URLCharLimit
	case ModeAddFolder, ModeRenameFolder:
		title.Placeholder = "Folder name"
		title.CharLimit = cfg.Input.FolderTitleCharLimit
	case ModeAddWidget:
		second.Placeholder = "LRT"
		second.CharLimit = cfg.Input.SourceCharLimit
	case ModeWidgetSource:
		m.Focus = fieldSecond
		second.Placeholder = "Station, language, ..."
		second.CharLimit = cfg.Input.SourceCharLimit
	}
	m.Inputs[m.Focus].Focus()
}

// Fields returns how many inputs mode uses.
func (m *ModalState) Fields(mode Mode) int {
	switch mode {
	case ModeAddLink, ModeEditLink, ModeAddWidget:
		return 2
	case ModeAddFolder, ModeRenameFolder:
		return 1
	default:
		return 0
	}
}

// Cycle moves focus to the next used input.
func (m *ModalState) Cycle(mode Mode) {
	n := m.Fields(mode)
	if n < 2 {
		return
	}
	m.Inputs[m.Focus].Blur()
	m.Focus = (m.Focus + 1) % n
	m.Inputs[m.Focus].Focus()
}

// Value returns the raw value of input i.
func (m *ModalState) Value(i int) string {
	return m.Inputs[i].Value()
}

// MoveTarget is a folder a node can be dropped into.
type MoveTarget struct {
	ID    string
	Label string // folder path
	Depth int
}

// MoveState holds state for the move picker.
type MoveState struct {
	NodeID  string
	Targets []MoveTarget
	Cursor  int
}

// Current returns the highlighted target.
func (m *MoveState) Current() (MoveTarget, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Targets) {
		return MoveTarget{}, false
	}
	return m.Targets[m.Cursor], true
}

// Reset clears the move state.
func (m *MoveState) Reset() {
	m.NodeID = ""
	m.Targets = nil
	m.Cursor = 0
}
