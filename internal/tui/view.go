package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/tui/screen"
)

// renderView creates the complete dashboard view.
func (a App) renderView() string {
	switch a.mode {
	case ModeSearch:
		return a.picker.View()
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeNormal:
	default:
		return a.renderModal()
	}

	var body string
	if len(a.state.Tree.TopLevelFolders()) == 0 {
		body = a.styles.Empty.Render("No folders yet. Press A to create one.")
	} else {
		body = a.renderGrid()
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTabs(),
		a.renderBreadcrumb(),
		"",
		body,
	))

	// Keep the help bar pinned to the bottom
	main := lipgloss.Place(a.width, a.height-a.screen.Frame.FooterLines+1, lipgloss.Left, lipgloss.Top, content)
	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderTabs renders one tab per top-level folder plus status badges.
func (a App) renderTabs() string {
	folders := a.state.Tree.TopLevelFolders()
	if len(folders) == 0 {
		return a.styles.Title.Render("hive") + a.renderBadges()
	}

	tabs := make([]string, len(folders))
	for i, f := range folders {
		label := f.Title
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, f.Title)
		}
		if f.ID == a.activeID {
			tabs[i] = a.styles.TabActive.Render(label)
		} else {
			tabs[i] = a.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + a.renderBadges()
}

// renderBadges shows loading and connectivity state.
func (a App) renderBadges() string {
	var badges []string
	if a.state.Loading {
		badges = append(badges, "loading…")
	}
	if a.pending > 0 {
		badges = append(badges, "saving…")
	}
	if a.state.Stale {
		badges = append(badges, "offline")
	}
	if len(badges) == 0 {
		return ""
	}
	return a.styles.Badge.Render(strings.Join(badges, " · "))
}

// renderBreadcrumb renders the path from the active folder to the shown one.
func (a App) renderBreadcrumb() string {
	active, ok := a.state.ActiveFolder()
	if !ok {
		return ""
	}
	parts := []string{active.Title}
	for _, id := range a.path {
		if n, ok := a.state.Tree.Find(id); ok {
			parts = append(parts, n.Title)
		}
	}

	path := strings.Join(parts, " / ")
	path, _ = screen.TruncateText(path, screen.GridWidth(a.width, a.screen.Frame), a.screen.Text)
	return a.styles.Breadcrumb.Render(path)
}

// renderGrid renders the visible part of the honeycomb.
func (a App) renderGrid() string {
	items := a.Items()
	grid := a.engine.Layout(len(items))
	c := drawGrid(a.state.Tree, items, grid, a.cursor, a.screen)

	height := screen.GridHeight(a.height, a.screen.Frame)
	focus := 0
	if a.cursor >= 0 && a.cursor < len(grid.Positions) {
		focus = grid.Positions[a.cursor].Top + a.screen.Tile.Height/2
	}
	offset := screen.CalculateViewportOffset(focus, c.height, height)

	return strings.Join(c.lines(offset, offset+height, a.renderPaint), "\n")
}

func (a App) renderPaint(p paint, s string) string {
	switch p {
	case paintFolder:
		return a.styles.TileFolder.Render(s)
	case paintWidget:
		return a.styles.TileWidget.Render(s)
	case paintAdd:
		return a.styles.TileAdd.Render(s)
	case paintSelected:
		return a.styles.TileSelected.Render(s)
	default:
		return a.styles.Tile.Render(s)
	}
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	var title, content strings.Builder

	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := screen.CalculateModalWidth(a.width, a.screen.Modal.DefaultWidthPercent, a.screen.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeAddFolder:
		title.WriteString("New Folder\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.modal.Inputs[fieldTitle].View())

	case ModeRenameFolder:
		title.WriteString("Rename Folder\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.modal.Inputs[fieldTitle].View())

	case ModeAddLink, ModeEditLink:
		if a.mode == ModeAddLink {
			title.WriteString("Add Link\n\n")
		} else {
			title.WriteString("Edit Link\n\n")
		}
		content.WriteString("Title:\n")
		content.WriteString(a.modal.Inputs[fieldTitle].View())
		content.WriteString("\n\n")
		content.WriteString("URL:\n")
		content.WriteString(a.modal.Inputs[fieldSecond].View())

	case ModeAddWidget:
		title.WriteString("Add Widget\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.modal.Inputs[fieldTitle].View())
		content.WriteString("\n\n")
		content.WriteString("Type (" + strings.Join(model.WidgetTypes, ", ") + "):\n")
		content.WriteString(a.modal.Inputs[fieldSecond].View())

	case ModeWidgetSource:
		title.WriteString("Widget Source\n\n")
		if n, ok := a.state.Tree.Find(a.modal.TargetID); ok {
			content.WriteString(n.Title + " " + a.styles.URL.Render("["+n.WidgetType+"]") + "\n\n")
		}
		content.WriteString("Source:\n")
		content.WriteString(a.modal.Inputs[fieldSecond].View())

	case ModeConfirmDelete:
		a.renderConfirmDelete(&title, &content)

	case ModeMove:
		a.renderMoveList(&title, &content)
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-a.screen.Frame.FooterLines+1,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderConfirmDelete(title, content *strings.Builder) {
	n, ok := a.state.Tree.Find(a.modal.TargetID)
	if !ok {
		title.WriteString("Delete Item?\n\n")
		content.WriteString("\"this item\"\n\n")
	} else {
		kind := "Link"
		switch n.Kind {
		case model.KindFolder:
			kind = "Folder"
		case model.KindWidget:
			kind = "Widget"
		}
		title.WriteString("Delete " + kind + "?\n\n")
		content.WriteString("\"" + n.Title + "\"\n\n")

		if n.IsFolder() {
			if count := a.descendants(n.ID); count > 0 {
				content.WriteString(fmt.Sprintf("Everything inside goes with it (%d items).\n\n", count))
			}
		}
	}

	content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "Enter", Desc: "confirm"},
		{Key: "Esc", Desc: "cancel"},
	}))
}

// descendants counts the nodes below id.
func (a App) descendants(id string) int {
	tree := a.state.Tree
	count := 0
	tree.Walk(func(n model.Node, _ int) bool {
		if tree.IsAncestor(id, n.ID) {
			count++
		}
		return true
	})
	return count
}

func (a App) renderMoveList(title, content *strings.Builder) {
	title.WriteString("Move Item\n\n")

	node, _ := a.state.Tree.Find(a.move.NodeID)
	content.WriteString("Moving: " + node.Title + "\n\n")

	if len(a.move.Targets) == 0 {
		content.WriteString(a.styles.Empty.Render("No folders to move into"))
		content.WriteString("\n")
		return
	}

	start, end := screen.CalculateVisibleListItems(a.screen.Modal.ListMaxVisible, a.move.Cursor, len(a.move.Targets))
	for i := start; i < end; i++ {
		t := a.move.Targets[i]
		label := t.Label
		if t.ID == node.Parent() {
			label += " (current)"
		}
		switch {
		case a.reparent.IsDragOver(t.ID):
			content.WriteString(a.styles.DropTarget.Render("▸ " + label))
		case i == a.move.Cursor:
			content.WriteString(a.styles.ItemSelected.Render("▸ " + label))
		default:
			content.WriteString("  " + label)
		}
		content.WriteString("\n")
	}
}

// renderHelpBar renders the status line and the keybind hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Message replaces the gap line
	lines = append(lines, a.renderMessageLine())

	if hints := a.renderHints(a.contextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return a.styles.App.UnsetPaddingTop().Render(strings.Join(lines, "\n"))
}

// renderMessageLine renders the status message, or the store's notice when
// there is none.
func (a App) renderMessageLine() string {
	text, typ := a.messageText, a.messageType
	if text == "" && a.state.Notice != nil {
		n := a.state.Notice
		text = n.Message
		if n.Retryable {
			text += " (r to retry)"
		}
		typ = MessageWarning
	}
	if text == "" {
		return ""
	}

	var style lipgloss.Style
	var prefix string
	switch typ {
	case MessageError:
		style, prefix = a.styles.Error, "✗ "
	case MessageWarning:
		style, prefix = a.styles.Warning, "⚠ "
	case MessageSuccess:
		style, prefix = a.styles.Success, "✓ "
	default:
		style, prefix = a.styles.Info, "• "
	}
	return style.Render(prefix + text)
}

// renderHelpOverlay renders the full key reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/l    prev/next tile\n")
	left.WriteString("j/k    row down/up\n")
	left.WriteString("tab    next folder\n")
	left.WriteString("S-tab  prev folder\n")
	left.WriteString("1-9    jump to folder\n")
	left.WriteString("-      up a folder\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("Enter  open\n")
	left.WriteString("y      yank url\n")
	left.WriteString("/      search\n")
	left.WriteString("r      reload\n")
	left.WriteString("x      dismiss notice\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a      add link\n")
	right.WriteString("A      add folder\n")
	right.WriteString("w      add widget\n")
	right.WriteString("e      edit\n")
	right.WriteString("E      rename folder\n")
	right.WriteString("m      move\n")
	right.WriteString("d      delete\n")
	right.WriteString("D      delete folder\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.screen.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.screen.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
