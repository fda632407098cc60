package tui

import (
	"strings"

	"github.com/nikbrunner/hive/internal/model"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "h/l:move Enter:open"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (h/l, tab, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, /, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

var (
	formHints = HintSet{
		Nav:    []Hint{{Key: "Tab", Desc: "next"}},
		Action: []Hint{{Key: "Enter", Desc: "save"}},
		System: []Hint{{Key: "Esc", Desc: "cancel"}},
	}
	singleFieldHints = HintSet{
		Action: []Hint{{Key: "Enter", Desc: "save"}},
		System: []Hint{{Key: "Esc", Desc: "cancel"}},
	}
)

// contextualHints returns the hints for the current mode.
func (a App) contextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.normalModeHints()
	case ModeAddLink, ModeEditLink, ModeAddWidget:
		return formHints
	case ModeAddFolder, ModeRenameFolder, ModeWidgetSource:
		return singleFieldHints
	case ModeMove:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "folder"}},
			Action: []Hint{{Key: "Enter", Desc: "drop"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{System: []Hint{{Key: "?/q/Esc", Desc: "close"}}}
	default:
		// Delete confirmation and search show their own hints
		return HintSet{}
	}
}

// normalModeHints returns hints for browsing, depending on the selection.
func (a App) normalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "hjkl", Desc: "move"},
			{Key: "tab", Desc: "folder"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "/", Desc: "search"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if len(a.path) > 0 {
		hints.Nav = append(hints.Nav, Hint{Key: "-", Desc: "up"})
	}
	if a.state.Notice != nil {
		hints.System = append([]Hint{{Key: "x", Desc: "dismiss"}}, hints.System...)
	}

	n, ok := a.selected()
	if !ok {
		hints.Edit = []Hint{{Key: "a", Desc: "add"}, {Key: "A", Desc: "folder"}}
		return hints
	}
	hints.Edit = []Hint{
		{Key: "e", Desc: "edit"},
		{Key: "m", Desc: "move"},
		{Key: "d", Desc: "del"},
	}
	if n.Kind == model.KindLink {
		hints.Edit = append(hints.Edit, Hint{Key: "y", Desc: "yank"})
	}
	return hints
}
